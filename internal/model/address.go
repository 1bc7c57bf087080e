package model

import (
	"strconv"
	"time"
)

// Address is address model entity
type Address struct {
	ID        string    `json:"id" bson:"_id"`
	Address1  *string   `json:"address_1" bson:"address_1"`
	Address2  *string   `json:"address_2" bson:"address_2"`
	City      *string   `json:"city" bson:"city"`
	State     *string   `json:"state" bson:"state"`
	Zip       *int      `json:"zip" bson:"zip"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// InUTC moves all address timestamps to UTC location
func (a *Address) InUTC() {
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
}

// AddressCreateInput is data accepted on address creation
type AddressCreateInput struct {
	Address1 *string `json:"address_1" validate:"omitempty,max=256"`
	Address2 *string `json:"address_2" validate:"omitempty,max=256"`
	City     *string `json:"city" validate:"omitempty,max=256"`
	State    *string `json:"state" validate:"omitempty,max=256"`
	Zip      *int    `json:"zip" validate:"omitempty,min=0,max=99999"`
}

// AddressUpdateInput is the set of address fields client is allowed to change
type AddressUpdateInput struct {
	Address1 Nullable[string] `json:"address_1" validate:"omitempty,max=256"`
	Address2 Nullable[string] `json:"address_2" validate:"omitempty,max=256"`
	City     Nullable[string] `json:"city" validate:"omitempty,max=256"`
	State    Nullable[string] `json:"state" validate:"omitempty,max=256"`
	Zip      Nullable[int]    `json:"zip" validate:"omitempty,min=0,max=99999"`
}

// MergePatch applies update to the address copy
func (a Address) MergePatch(upd AddressUpdateInput) Address {
	apply(&a.Address1, upd.Address1)
	apply(&a.Address2, upd.Address2)
	apply(&a.City, upd.City)
	apply(&a.State, upd.State)
	apply(&a.Zip, upd.Zip)
	return a
}

// AddressOrderByInput declares sortable address fields
type AddressOrderByInput struct {
	Address1  *SortOrder `json:"address_1,omitempty"`
	Address2  *SortOrder `json:"address_2,omitempty"`
	City      *SortOrder `json:"city,omitempty"`
	CreatedAt *SortOrder `json:"createdAt,omitempty"`
	ID        *SortOrder `json:"id,omitempty"`
	State     *SortOrder `json:"state,omitempty"`
	UpdatedAt *SortOrder `json:"updatedAt,omitempty"`
	Zip       *SortOrder `json:"zip,omitempty"`
}

// Set sets sort order for the field named as in JSON contract
func (o *AddressOrderByInput) Set(field string, order SortOrder) error {
	switch field {
	case "address_1":
		o.Address1 = &order
	case "address_2":
		o.Address2 = &order
	case "city":
		o.City = &order
	case "createdAt":
		o.CreatedAt = &order
	case "id":
		o.ID = &order
	case "state":
		o.State = &order
	case "updatedAt":
		o.UpdatedAt = &order
	case "zip":
		o.Zip = &order
	default:
		return &UnknownFieldErr{Entity: "Address", Field: field}
	}
	return nil
}

// Fields lists sort directives in declaration order
func (o AddressOrderByInput) Fields() []OrderField {
	return orderFields(
		orderPair{"address_1", o.Address1},
		orderPair{"address_2", o.Address2},
		orderPair{"city", o.City},
		orderPair{"createdAt", o.CreatedAt},
		orderPair{"id", o.ID},
		orderPair{"state", o.State},
		orderPair{"updatedAt", o.UpdatedAt},
		orderPair{"zip", o.Zip},
	)
}

// AddressWhereInput is equality filter over address fields
type AddressWhereInput struct {
	ID       *string `json:"id,omitempty"`
	Address1 *string `json:"address_1,omitempty"`
	Address2 *string `json:"address_2,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Zip      *int    `json:"zip,omitempty"`
}

// Set sets filter value for the field named as in JSON contract
func (w *AddressWhereInput) Set(field string, value string) error {
	switch field {
	case "id":
		w.ID = &value
	case "address_1":
		w.Address1 = &value
	case "address_2":
		w.Address2 = &value
	case "city":
		w.City = &value
	case "state":
		w.State = &value
	case "zip":
		zip, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		w.Zip = &zip
	default:
		return &UnknownFieldErr{Entity: "Address", Field: field}
	}
	return nil
}

// AddressFindManyArgs holds filtering, sorting and pagination for addresses listing
type AddressFindManyArgs struct {
	Where   AddressWhereInput
	OrderBy []AddressOrderByInput
	Skip    int
	Take    int
}

// OrderFields flattens all sort directives preserving order
func (a AddressFindManyArgs) OrderFields() []OrderField {
	fields := make([]OrderField, 0)
	for _, o := range a.OrderBy {
		fields = append(fields, o.Fields()...)
	}
	return fields
}
