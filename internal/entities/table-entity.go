package entities

type Table struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	AccessToken string   `json:"access_token"`
	WaiterIDs   []uint64 `json:"waiter_ids"`
}
