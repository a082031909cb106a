package model

// Admin represents a row in the `admins` table.  A single bootstrap account
// (admin/admin) is seeded at first startup when the table is empty; this is
// an operational convenience for the campaign staff, not a security
// feature, and the password is expected to be changed out of band.
//
// Fields:
//  Username     – unique login name (primary key).
//  PasswordHash – bcrypt hash of the credential.
type Admin struct {
    Username     string // admins.username
    PasswordHash string // admins.password_hash
}
