package entity

// Airline is a row of the airlines dimension table
type Airline struct {
	ID   int64  `csv:"ID"`
	Name string `csv:"AIRLINE"`
}
