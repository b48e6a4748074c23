package entities

// Identity is the authenticated requester, threaded explicitly through
// every lifecycle call. The core never reads ambient request state.
type Identity struct {
	ID       string
	Username string
	Fullname string
	Email    string
	IsAdmin  bool
}
