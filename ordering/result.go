package ordering

// Result is the payload handed back to the model after an operation ran. It
// is serialized to JSON as-is.
type Result interface {
	Failed() bool
}

type ErrorResult struct {
	Error string `json:"error"`
}

type AddedResult struct {
	Success  bool    `json:"success"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	NewTotal int     `json:"new_total"`
	Price    float64 `json:"price"`
}

type RemovedResult struct {
	Success   bool   `json:"success"`
	Item      string `json:"item"`
	Removed   bool   `json:"removed"`
	Remaining int    `json:"remaining"`
}

type ClearedResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SearchHit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type SearchResult struct {
	Items []SearchHit `json:"items"`
	Count int         `json:"count"`
}

type RestrictionsResult struct {
	Success      bool     `json:"success"`
	Allergens    []string `json:"allergens"`
	DietaryPrefs []string `json:"dietary_prefs"`
}

func (ErrorResult) Failed() bool        { return true }
func (AddedResult) Failed() bool        { return false }
func (RemovedResult) Failed() bool      { return false }
func (ClearedResult) Failed() bool      { return false }
func (SearchResult) Failed() bool       { return false }
func (RestrictionsResult) Failed() bool { return false }
