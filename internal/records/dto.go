package records

type fileResponse struct {
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	StorageKey string `json:"storageKey,omitempty"`
	SizeBytes  int64  `json:"sizeBytes"`
	MimeType   string `json:"mimeType,omitempty"`
	Category   string `json:"category,omitempty"`
}

type recordResponse struct {
	ID            string       `json:"id"`
	Department    string       `json:"department"`
	Subject       string       `json:"subject"`
	ReceivedFrom  string       `json:"receivedFrom,omitempty"`
	AllocatedTo   string       `json:"allocatedTo,omitempty"`
	Status        string       `json:"status"`
	InwardNumber  string       `json:"inwardNumber,omitempty"`
	InwardDate    string       `json:"inwardDate,omitempty"`
	ReceivingDate string       `json:"receivingDate,omitempty"`
	File          fileResponse `json:"file"`
	UploaderID    string       `json:"uploaderId"`
	UploaderEmail string       `json:"uploaderEmail,omitempty"`
	CreatedAt     int64        `json:"createdAt"`
	UpdatedAt     int64        `json:"updatedAt"`
}

func toResponse(rec Record) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		Department:    rec.Department,
		Subject:       rec.Subject,
		ReceivedFrom:  rec.ReceivedFrom,
		AllocatedTo:   rec.AllocatedTo,
		Status:        rec.Status,
		InwardNumber:  rec.InwardNumber,
		InwardDate:    rec.InwardDate,
		ReceivingDate: rec.ReceivingDate,
		File: fileResponse{
			Name:       rec.File.Name,
			URL:        rec.File.URL,
			StorageKey: rec.File.StorageKey,
			SizeBytes:  rec.File.SizeBytes,
			MimeType:   rec.File.MimeType,
			Category:   rec.File.Category,
		},
		UploaderID:    rec.UploaderID,
		UploaderEmail: rec.UploaderEmail,
		CreatedAt:     rec.CreatedAt.UnixMilli(),
		UpdatedAt:     rec.UpdatedAt.UnixMilli(),
	}
}

func toResponses(recs []Record) []recordResponse {
	out := make([]recordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toResponse(rec))
	}
	return out
}
