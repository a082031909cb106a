package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSpinRequiresUserID(t *testing.T) {
	h := &SpinHandler{}

	for _, body := range []string{`{}`, `{"userId":""}`, `{"userId":"   "}`} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/spin", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Spin(c); err != nil {
			t.Fatalf("body %s: handler error %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status %d, want 400", body, rec.Code)
		}
	}
}

func TestStopAngleStaysInsideSegment(t *testing.T) {
	// 73+ prizes give segments under 5 degrees, the regime where the
	// pointer offset must shrink with the segment.
	for _, size := range []int{1, 2, 3, 4, 5, 6, 7, 8, 36, 72, 73, 120} {
		segment := 360.0 / float64(size)
		for index := 0; index < size; index++ {
			for i := 0; i < 20; i++ {
				got := stopAngle(index, size)
				lo := float64(index) * segment
				hi := float64(index+1) * segment
				if got < lo || got >= hi {
					t.Fatalf("size %d index %d: angle %.2f outside [%.2f, %.2f)", size, index, got, lo, hi)
				}
			}
		}
	}
}

func TestStopAngleFullWheelBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		if got := stopAngle(0, 1); got < 0 || got >= 360 {
			t.Fatalf("single segment angle %.2f out of [0, 360)", got)
		}
	}
}

func TestStopAngleDegenerateSize(t *testing.T) {
	if got := stopAngle(0, 0); got != 0 {
		t.Errorf("size 0: got %.2f, want 0", got)
	}
	if got := stopAngle(3, -1); got != 0 {
		t.Errorf("negative size: got %.2f, want 0", got)
	}
}
