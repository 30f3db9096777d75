package records

import "time"

// Statuses is the fixed workflow vocabulary for a record.
var Statuses = []string{
	"Pending",
	"In Progress",
	"Under Review",
	"Completed",
	"On Hold",
	"Rejected",
	"Archived",
}

// DefaultStatus is applied when a record is created without a status.
const DefaultStatus = "Pending"

// ValidStatus reports whether s is one of the allowed workflow statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// FileMeta describes the stored document attached to a record.
type FileMeta struct {
	Name       string
	URL        string
	StorageKey string
	SizeBytes  int64
	MimeType   string
	Category   string
}

// Record is a department document entry. Dates are held as YYYY-MM-DD
// strings matching the wire format.
type Record struct {
	ID            string
	Department    string
	Subject       string
	ReceivedFrom  string
	AllocatedTo   string
	Status        string
	InwardNumber  string
	InwardDate    string
	ReceivingDate string
	File          FileMeta
	UploaderID    string
	UploaderEmail string
	UploaderRole  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// VisibleTo reports whether the actor may see this record. Admins see their
// own records plus everything uploaded by subadmins; subadmins see only
// their own.
func (rec Record) VisibleTo(a Actor) bool {
	if rec.UploaderID == a.ID {
		return true
	}
	return a.Role == "admin" && rec.UploaderRole == "subadmin"
}
