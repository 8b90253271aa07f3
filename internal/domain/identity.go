package domain

// IdentityKind различает владельца корзины: аутентифицированный пользователь
// или анонимная сессия.
type IdentityKind int

const (
	IdentityUser IdentityKind = iota + 1
	IdentityGuest
)

// Identity — единое понятие владельца корзины/заказа.
// Для IdentityUser заполнен UserID, для IdentityGuest — CartToken.
type Identity struct {
	Kind      IdentityKind
	UserID    int64
	CartToken string
}

func NewUserIdentity(userID int64) Identity {
	return Identity{Kind: IdentityUser, UserID: userID}
}

func NewGuestIdentity(token string) Identity {
	return Identity{Kind: IdentityGuest, CartToken: token}
}

func (i Identity) IsUser() bool {
	return i.Kind == IdentityUser
}

func (i Identity) IsGuest() bool {
	return i.Kind == IdentityGuest
}
