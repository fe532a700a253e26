package api

// Bill is a bill record as it travels between client and server. Date keeps
// the stored YYYY-MM-DD form. FileURL and FileName are nil until a file has
// been attached.
type Bill struct {
	ID           string  `json:"id,omitempty"`
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       int     `json:"amount"`
	Date         string  `json:"date"`
	Vat          string  `json:"vat"`
	Pct          int     `json:"pct"`
	Commentary   string  `json:"commentary"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`
	FileURL      *string `json:"fileUrl,omitempty"`
	FileName     *string `json:"fileName"`
	Status       string  `json:"status"`
}

type User struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"jwt"`
	User        User   `json:"user"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

// CreateBillRequest carries an attachment and the email of its owner.
type CreateBillRequest struct {
	Email       string `json:"email"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

// CreateBillResponse identifies the pending bill created for the attachment.
// Key is the id of that bill.
type CreateBillResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}

// UpdateBillRequest holds a JSON encoded Bill in Data. A nil Selector asks
// the store to insert a new bill; otherwise it names the bill to update.
type UpdateBillRequest struct {
	Data     string  `json:"data"`
	Selector *string `json:"selector"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}
