// Package auth protects the catalog's write surface.
//
// Three independent layers are provided:
//   - admin basic auth: destructive routes require ADMIN_USERNAME and a password
//     matching the bcrypt ADMIN_PASSWORD_HASH; an empty hash leaves them open
//   - sessions: scs-backed sessions stored in the catalog's SQLite file, used
//     for flash messages after form submissions
//   - CSRF: gorilla/csrf tokens on the HTML form routes
//
// Generate a hash for ADMIN_PASSWORD_HASH with:
//
//	quotes hash-password
package auth
