package models

type Phone struct {
	ID     int64
	UserID int64
	Phone  string
}

type Email struct {
	ID       int64
	UserID   int64
	Email    string
	IsActive bool
}

type Address struct {
	ID       int64
	UserID   int64
	Name     string
	Address  string
	Lat      *string
	Long     *string
	RegionID *int64
}
