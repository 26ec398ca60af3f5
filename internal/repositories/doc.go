// package repositories provides the persistence layer backing the session store.
//
// The only persistent state in ytpaste is the OAuth token pair, held in a
// key/value sessions table. [SessionRepository] implements the auth.Store
// interface over SQLite; tests substitute the in-memory store from the auth
// package.
package repositories
