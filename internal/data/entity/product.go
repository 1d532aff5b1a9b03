package entity

type Product struct {
	Base
	SKU     string `db:"sku"`
	Name    string `db:"name"`
	Tracked bool   `db:"tracked"`
}
