// Package cli provides the interactive MedBook command-line client.
//
// The REPL stands in for the web pages of the booking app: `open <path>`
// navigates to a client route, the route guard decides whether the page is
// shown or redirected, and the page renderer fetches its data through the
// API bindings. Failures are shown as one-line notifications and never end
// the session loop.
//
// Key features:
//   - Login / Register / Logout with a persisted session restored at start
//   - Role-aware pages: dashboard, doctors, appointments, chat, admin
//   - Appointment actions for doctors (accept, reject, complete) and
//     patients (book, review)
//   - Background connectivity watcher shown in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
