package realtime

// roomKind discriminates the two explicit room families. The implicit
// "all clients" target is not a Room; it is expressed by DeliverToAll.
type roomKind uint8

const (
	roomKindRole roomKind = iota + 1
	roomKindPersonal
)

// Room is a named broadcast target. It is a small comparable value type so it
// can key the registry's membership maps directly, instead of the
// string-concatenated names ("user_"+id) the wire protocol uses.
type Room struct {
	kind   roomKind
	userID string
}

// Admins is the singleton staff room.
func Admins() Room {
	return Room{kind: roomKindRole}
}

// Customer is the personal room of one customer.
func Customer(userID string) Room {
	return Room{kind: roomKindPersonal, userID: userID}
}

// IsZero reports whether r is the zero Room (no target).
func (r Room) IsZero() bool {
	return r.kind == 0
}

// sameKind reports whether two rooms belong to the same family. A connection
// may hold at most one membership per family.
func (r Room) sameKind(other Room) bool {
	return r.kind == other.kind
}

// String renders the room's wire-protocol name, for logging.
func (r Room) String() string {
	switch r.kind {
	case roomKindRole:
		return "admin"
	case roomKindPersonal:
		return "user_" + r.userID
	default:
		return "<none>"
	}
}
