package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Address is one shipping address snapshot on a user profile. Exactly one
// address carries Active=true at any time; the profile module maintains
// that, we only read it.
type Address struct {
	ID          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	FirstName   string        `json:"firstName" bson:"firstName,omitempty"`
	LastName    string        `json:"lastName" bson:"lastName,omitempty"`
	PhoneNumber string        `json:"phoneNumber" bson:"phoneNumber,omitempty"`
	Address1    string        `json:"address1" bson:"address1,omitempty"`
	Address2    string        `json:"address2" bson:"address2,omitempty"`
	City        string        `json:"city" bson:"city,omitempty"`
	State       string        `json:"state" bson:"state,omitempty"`
	ZipCode     string        `json:"zipCode" bson:"zipCode,omitempty"`
	Country     string        `json:"country" bson:"country,omitempty"`
	Active      bool          `json:"active" bson:"active"`
}

// User mirrors the identity provider's record plus storefront profile
// data. ExternalID is the stable identifier issued by the provider.
type User struct {
	ID                   bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID           string        `json:"externalId" bson:"externalId"`
	Email                string        `json:"email" bson:"email"`
	Image                string        `json:"image" bson:"image"`
	Username             string        `json:"username" bson:"username"`
	Role                 string        `json:"role" bson:"role"`
	DefaultPaymentMethod string        `json:"defaultPaymentMethod" bson:"defaultPaymentMethod"`
	Address              []Address     `json:"address" bson:"address,omitempty"`
	CreatedAt            time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ActiveAddress returns the address marked active, falling back to the
// first one. Nil when the user has no addresses yet.
func (u *User) ActiveAddress() *Address {
	for i := range u.Address {
		if u.Address[i].Active {
			return &u.Address[i]
		}
	}
	if len(u.Address) > 0 {
		return &u.Address[0]
	}
	return nil
}
