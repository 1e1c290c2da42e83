package domain

// Transaction is the immutable record of one completed trade. It is
// appended to the market's history at settlement and never mutated;
// derived figures (turn volume, actor trade history) are computed from
// these records rather than stored redundantly.
type Transaction struct {
	TransactionID string
	BuyerID       string
	SellerID      string
	CommodityID   CommodityID
	Quantity      int64
	Price         int64
	TotalAmount   int64
	Turn          int64
}
