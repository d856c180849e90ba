package profile

import "time"

// Profile is a user's attribute record in the users collection. Field names
// follow the collection schema the dataset was imported with.
type Profile struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Email    string `bson:"Email" json:"email"`
	Password string `bson:"Password" json:"-"`
	IsAdmin  bool   `bson:"is_admin" json:"is_admin"`

	Age         int    `bson:"age" json:"age"`
	Status      string `bson:"status" json:"status"`
	Sex         string `bson:"sex" json:"sex"`
	Orientation string `bson:"orientation" json:"orientation"`

	BodyType  string `bson:"body_type,omitempty" json:"body_type,omitempty"`
	Diet      string `bson:"diet,omitempty" json:"diet,omitempty"`
	Drinks    string `bson:"drinks,omitempty" json:"drinks,omitempty"`
	Education string `bson:"education,omitempty" json:"education,omitempty"`
	Ethnicity string `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	Height    int    `bson:"height,omitempty" json:"height,omitempty"`
	Income    int    `bson:"income,omitempty" json:"income,omitempty"`
	Job       string `bson:"job,omitempty" json:"job,omitempty"`
	Offspring string `bson:"offspring,omitempty" json:"offspring,omitempty"`
	Pets      string `bson:"pets,omitempty" json:"pets,omitempty"`
	Religion  string `bson:"religion,omitempty" json:"religion,omitempty"`
	Smokes    string `bson:"smokes,omitempty" json:"smokes,omitempty"`
	Speaks    string `bson:"speaks,omitempty" json:"speaks,omitempty"`

	City  string `bson:"city" json:"city"`
	State string `bson:"state" json:"state"`

	Essay string `bson:"essay0,omitempty" json:"essay,omitempty"`

	Interests   []string        `bson:"interests,omitempty" json:"interests,omitempty"`
	ReviewsMade []ReviewSummary `bson:"reviews_made,omitempty" json:"reviews_made,omitempty"`
}

// ReviewSummary is the embedded pointer a profile keeps for each review its
// owner authored
type ReviewSummary struct {
	ReviewID string `bson:"review_id" json:"review_id"`
	TargetID string `bson:"target_id" json:"target_id"`
	Rating   int    `bson:"rating" json:"rating"`
}

// Review is a full review document in the reviews collection
type Review struct {
	ID       string    `bson:"_id,omitempty" json:"id"`
	TargetID string    `bson:"target_id" json:"target_id"`
	Rating   int       `bson:"rating" json:"rating"`
	Comment  string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Date     time.Time `bson:"review_date" json:"review_date"`
}
