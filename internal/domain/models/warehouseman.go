package models

// Warehouseman is an app user identified by a shared secret key.
type Warehouseman struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	SecretKey   string `json:"secretKey"`
	WarehouseID ID     `json:"warehouseId,omitempty"`
}

// Profile is what the gateway returns after login; it never carries the key.
type Profile struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	WarehouseID ID     `json:"warehouseId,omitempty"`
}

// Profile strips the secret key.
func (w Warehouseman) Profile() Profile {
	return Profile{
		ID:          w.ID,
		Name:        w.Name,
		City:        w.City,
		WarehouseID: w.WarehouseID,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	SecretKey string `json:"secretKey"`
}
