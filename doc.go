// Package courses implements the authentication and authorization core of a
// course-sales platform: two independently keyed principal classes (User and
// Admin), bcrypt credential hashing, JWT issuance and verification, and
// ownership-scoped repositories over the course catalog and purchase ledger.
package courses
