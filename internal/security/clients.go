package security

// In-memory operator registry. The board is a single-store tool; two
// credentials (kitchen tablet and owner phone) cover it.
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"kitchen-tablet": {ID: "kitchen-tablet", Secret: "kitchen-secret", Perms: []string{"orders.read", "orders.write"}, Enabled: true},
	"owner-phone":    {ID: "owner-phone", Secret: "owner-secret", Perms: []string{"orders.read", "orders.write"}, Enabled: true},
}
