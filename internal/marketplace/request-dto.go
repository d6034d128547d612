package marketplace

type ListForResaleRequest struct {
	AskPrice int64 `json:"ask_price" binding:"required,min=1"`
}

type BuyResaleRequest struct {
	Payment int64 `json:"payment" binding:"required,min=1"`
}
