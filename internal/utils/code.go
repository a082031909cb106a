package utils

import "crypto/rand"

// redeemAlphabet deliberately excludes nothing: codes are always paired
// with the user and prize context in the audit trail, so ambiguous glyphs
// are acceptable and the full 36-character set keeps codes short.
const redeemAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RedeemCodeLength is the number of characters in an issued redeem code.
const RedeemCodeLength = 6

// NewRedeemCode returns a short human-shareable redeem code: six uppercase
// alphanumeric characters drawn from a CSPRNG.  Bytes at or above the
// largest multiple of the alphabet size are rejected so every character is
// equally likely.  Collisions are tolerated; uniqueness is provided by the
// (user, prize) audit context.
func NewRedeemCode() (string, error) {
    // 252 = 7 * 36, the rejection threshold for a 36-character alphabet.
    const limit = 256 - 256%len(redeemAlphabet)
    out := make([]byte, 0, RedeemCodeLength)
    buf := make([]byte, RedeemCodeLength)
    for len(out) < RedeemCodeLength {
        if _, err := rand.Read(buf); err != nil {
            return "", err
        }
        for _, b := range buf {
            if int(b) >= limit {
                continue
            }
            out = append(out, redeemAlphabet[int(b)%len(redeemAlphabet)])
            if len(out) == RedeemCodeLength {
                break
            }
        }
    }
    return string(out), nil
}
