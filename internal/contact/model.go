package contact

import "time"

const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

var validStatuses = map[string]struct{}{
	StatusNew:      {},
	StatusRead:     {},
	StatusReplied:  {},
	StatusArchived: {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

// Message is an enquiry sent through the site's contact form.
type Message struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	Subject   string    `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Project   string    `bson:"project,omitempty" json:"project,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Company string `json:"company" validate:"omitempty,max=120"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
	// Project is the slug of the case study the visitor came from, if any.
	Project string `json:"project" validate:"omitempty,slug"`
	// Website is a honeypot. Real visitors never see the field.
	Website string `json:"website"`
}

type ListFilter struct {
	Status string
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}
