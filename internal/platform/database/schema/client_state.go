package schema

// ClientStateTable represents the 'client.state' table
type ClientStateTable struct {
	Table     string
	Profile   string
	Key       string
	Value     string
	UpdatedAt string
}

// ClientState is the schema definition for client.state
var ClientState = ClientStateTable{
	Table:     "client.state",
	Profile:   "profile",
	Key:       "statekey",
	Value:     "value",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ClientStateTable) Columns() []string {
	return []string{
		t.Profile, t.Key, t.Value, t.UpdatedAt,
	}
}
