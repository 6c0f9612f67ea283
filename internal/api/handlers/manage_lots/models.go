package manage_lots

// SetActiveRequest тело запроса PATCH /admin/lots/{lotId}/active
type SetActiveRequest struct {
	Active *bool `json:"active"`
}
