package common

import "time"

// SessionCookieName is the cookie that carries the signed session token
// between the browser (or CLI client) and the server.
const SessionCookieName = "session"

// SessionCookiePath limits the session cookie to the whole API surface.
const SessionCookiePath = "/"

// SessionValidityDefault is the default lifetime of an issued session.
const SessionValidityDefault = 7 * 24 * time.Hour
