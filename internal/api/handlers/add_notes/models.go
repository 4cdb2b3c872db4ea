package add_notes

// AddNotesRequest HTTP запрос на добавление заметок врача
type AddNotesRequest struct {
	Notes string `json:"notes"`
}
