package middlewares

// KeyUserID is where the auth middleware stashes the verified subject id on
// the gin context.
const KeyUserID = "auth.userID"
