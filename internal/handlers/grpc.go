package handlers

import (
	"bytes"
	"context"

	gojson "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
	"github.com/umalmyha/crm/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type customerFindManyRequest struct {
	Where   model.CustomerWhereInput     `json:"where"`
	OrderBy []model.CustomerOrderByInput `json:"orderBy"`
	Skip    int                          `json:"skip" validate:"min=0"`
	Take    int                          `json:"take" validate:"min=0"`
}

type customerUpdateRequest struct {
	ID   string            `json:"id" validate:"required"`
	Data gojson.RawMessage `json:"data"`
}

// CustomerGrpcHandler is gRPC handler for customers endpoint
type CustomerGrpcHandler struct {
	proto.UnimplementedCustomerServiceServer
	customerSvc service.CustomerService
	validator   echo.Validator
}

// NewCustomerGrpcHandler builds CustomerGrpcHandler
func NewCustomerGrpcHandler(customerSvc service.CustomerService, validator echo.Validator) *CustomerGrpcHandler {
	return &CustomerGrpcHandler{
		UnimplementedCustomerServiceServer: proto.UnimplementedCustomerServiceServer{},
		customerSvc:                        customerSvc,
		validator:                          validator,
	}
}

// Create creates new customer
func (h *CustomerGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in model.CustomerCreateInput
	if err := h.decode(req, &in); err != nil {
		return nil, err
	}

	c, err := h.customerSvc.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return toStruct(c)
}

// FindMany lists customers
func (h *CustomerGrpcHandler) FindMany(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var fm customerFindManyRequest
	if err := h.decode(req, &fm); err != nil {
		return nil, err
	}

	args := model.CustomerFindManyArgs{Where: fm.Where, OrderBy: fm.OrderBy, Skip: fm.Skip, Take: fm.Take}
	for i := range args.OrderBy {
		for _, f := range args.OrderBy[i].Fields() {
			order, err := model.ParseSortOrder(string(f.Order))
			if err != nil {
				pldErr := &validation.PayloadError{}
				pldErr.Violation(f.Field, err.Error())
				return nil, pldErr
			}
			// field comes from Fields so it is always known
			_ = args.OrderBy[i].Set(f.Field, order)
		}
	}

	customers, err := h.customerSvc.FindMany(ctx, args)
	if err != nil {
		return nil, err
	}

	encoded, err := gojson.Marshal(nonNil(customers))
	if err != nil {
		return nil, err
	}

	res := &structpb.ListValue{}
	if err := res.UnmarshalJSON(encoded); err != nil {
		return nil, err
	}
	return res, nil
}

// FindOne gets customer by id
func (h *CustomerGrpcHandler) FindOne(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	where := model.WhereUniqueInput{ID: req.GetValue()}

	c, err := h.customerSvc.FindOne(ctx, where)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, appErrors.NewEntryNotFoundErr(where)
	}
	return toStruct(c)
}

// Update changes provided customer fields
func (h *CustomerGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var ur customerUpdateRequest
	if err := h.decode(req, &ur); err != nil {
		return nil, err
	}

	var upd model.CustomerUpdateInput
	if err := validation.DecodeStrict(bytes.NewReader(ur.Data), &upd); err != nil {
		return nil, err
	}

	if err := h.validator.Validate(&upd); err != nil {
		return nil, err
	}

	where := model.WhereUniqueInput{ID: ur.ID}
	c, err := h.customerSvc.Update(ctx, where, upd)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, appErrors.NewEntryNotFoundErr(where)
	}
	return toStruct(c)
}

// Delete deletes customer by id
func (h *CustomerGrpcHandler) Delete(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	where := model.WhereUniqueInput{ID: req.GetValue()}

	c, err := h.customerSvc.Delete(ctx, where)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, appErrors.NewEntryNotFoundErr(where)
	}
	return toStruct(c)
}

// decode moves struct payload into dst the same strict way HTTP body is bound
func (h *CustomerGrpcHandler) decode(req *structpb.Struct, dst any) error {
	encoded, err := req.MarshalJSON()
	if err != nil {
		return err
	}

	if err := validation.DecodeStrict(bytes.NewReader(encoded), dst); err != nil {
		return err
	}
	return h.validator.Validate(dst)
}

func toStruct(v any) (*structpb.Struct, error) {
	encoded, err := gojson.Marshal(v)
	if err != nil {
		return nil, err
	}

	res := &structpb.Struct{}
	if err := res.UnmarshalJSON(encoded); err != nil {
		return nil, err
	}
	return res, nil
}
