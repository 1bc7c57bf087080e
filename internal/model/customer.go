package model

import (
	"time"
)

// Customer is customer model entity
type Customer struct {
	ID        string            `json:"id" bson:"_id"`
	FirstName *string           `json:"firstName" bson:"firstName"`
	LastName  *string           `json:"lastName" bson:"lastName"`
	Email     *string           `json:"email" bson:"email"`
	Phone     *string           `json:"phone" bson:"phone"`
	Birthday  *time.Time        `json:"birthday" bson:"birthday"`
	Address   *WhereUniqueInput `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// AddressID returns id of referenced address or nil if customer has no address
func (c *Customer) AddressID() *string {
	if c.Address == nil {
		return nil
	}
	id := c.Address.ID
	return &id
}

// InUTC moves all customer timestamps to UTC location
func (c *Customer) InUTC() {
	if c.Birthday != nil {
		birthday := c.Birthday.UTC()
		c.Birthday = &birthday
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}

// CustomerCreateInput is data accepted on customer creation, server-managed fields are not part of it
type CustomerCreateInput struct {
	Address   *WhereUniqueInput `json:"address"`
	Birthday  *time.Time        `json:"birthday"`
	Email     *string           `json:"email" validate:"omitempty,max=256"`
	FirstName *string           `json:"firstName" validate:"omitempty,max=256"`
	LastName  *string           `json:"lastName" validate:"omitempty,max=256"`
	Phone     *string           `json:"phone" validate:"omitempty,max=256"`
}

// CustomerUpdateInput is the set of fields client is allowed to change
type CustomerUpdateInput struct {
	Address   Nullable[WhereUniqueInput] `json:"address"`
	Birthday  Nullable[time.Time]        `json:"birthday"`
	Email     Nullable[string]           `json:"email" validate:"omitempty,max=256"`
	FirstName Nullable[string]           `json:"firstName" validate:"omitempty,max=256"`
	LastName  Nullable[string]           `json:"lastName" validate:"omitempty,max=256"`
	Phone     Nullable[string]           `json:"phone" validate:"omitempty,max=256"`
}

// MergePatch applies update to the customer copy, null detaches/clears the field
func (c Customer) MergePatch(upd CustomerUpdateInput) Customer {
	apply(&c.Address, upd.Address)
	apply(&c.Birthday, upd.Birthday)
	apply(&c.Email, upd.Email)
	apply(&c.FirstName, upd.FirstName)
	apply(&c.LastName, upd.LastName)
	apply(&c.Phone, upd.Phone)
	return c
}

// CustomerOrderByInput declares sortable customer fields
type CustomerOrderByInput struct {
	AddressID *SortOrder `json:"addressId,omitempty"`
	Birthday  *SortOrder `json:"birthday,omitempty"`
	CreatedAt *SortOrder `json:"createdAt,omitempty"`
	Email     *SortOrder `json:"email,omitempty"`
	FirstName *SortOrder `json:"firstName,omitempty"`
	ID        *SortOrder `json:"id,omitempty"`
	LastName  *SortOrder `json:"lastName,omitempty"`
	Phone     *SortOrder `json:"phone,omitempty"`
	UpdatedAt *SortOrder `json:"updatedAt,omitempty"`
}

// Set sets sort order for the field named as in JSON contract
func (o *CustomerOrderByInput) Set(field string, order SortOrder) error {
	switch field {
	case "addressId":
		o.AddressID = &order
	case "birthday":
		o.Birthday = &order
	case "createdAt":
		o.CreatedAt = &order
	case "email":
		o.Email = &order
	case "firstName":
		o.FirstName = &order
	case "id":
		o.ID = &order
	case "lastName":
		o.LastName = &order
	case "phone":
		o.Phone = &order
	case "updatedAt":
		o.UpdatedAt = &order
	default:
		return &UnknownFieldErr{Entity: "Customer", Field: field}
	}
	return nil
}

// Fields lists sort directives in declaration order
func (o CustomerOrderByInput) Fields() []OrderField {
	return orderFields(
		orderPair{"addressId", o.AddressID},
		orderPair{"birthday", o.Birthday},
		orderPair{"createdAt", o.CreatedAt},
		orderPair{"email", o.Email},
		orderPair{"firstName", o.FirstName},
		orderPair{"id", o.ID},
		orderPair{"lastName", o.LastName},
		orderPair{"phone", o.Phone},
		orderPair{"updatedAt", o.UpdatedAt},
	)
}

// CustomerWhereInput is equality filter over customer fields
type CustomerWhereInput struct {
	ID        *string           `json:"id,omitempty"`
	FirstName *string           `json:"firstName,omitempty"`
	LastName  *string           `json:"lastName,omitempty"`
	Email     *string           `json:"email,omitempty"`
	Phone     *string           `json:"phone,omitempty"`
	Birthday  *time.Time        `json:"birthday,omitempty"`
	Address   *WhereUniqueInput `json:"address,omitempty"`
}

// Set sets filter value for the field named as in JSON contract
func (w *CustomerWhereInput) Set(field string, value string) error {
	switch field {
	case "id":
		w.ID = &value
	case "firstName":
		w.FirstName = &value
	case "lastName":
		w.LastName = &value
	case "email":
		w.Email = &value
	case "phone":
		w.Phone = &value
	case "birthday":
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		w.Birthday = &t
	case "address", "addressId":
		w.Address = &WhereUniqueInput{ID: value}
	default:
		return &UnknownFieldErr{Entity: "Customer", Field: field}
	}
	return nil
}

// CustomerFindManyArgs holds filtering, sorting and pagination for customers listing
type CustomerFindManyArgs struct {
	Where   CustomerWhereInput
	OrderBy []CustomerOrderByInput
	Skip    int
	Take    int
}

// OrderFields flattens all sort directives preserving order
func (a CustomerFindManyArgs) OrderFields() []OrderField {
	fields := make([]OrderField, 0)
	for _, o := range a.OrderBy {
		fields = append(fields, o.Fields()...)
	}
	return fields
}
