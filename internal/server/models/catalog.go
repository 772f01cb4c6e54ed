package models

type Brand struct {
	ID   int64
	Name string
	Logo string
}

type PhoneModel struct {
	ID      int64
	Name    string
	BrandID int64
}

type Color struct {
	ID   int64
	Name string
	Hex  string
}

type Region struct {
	ID   int64
	Name string
}

type City struct {
	ID       int64
	Name     string
	RegionID int64
}

type Currency struct {
	ID   int64
	Name string
	Code string
}
