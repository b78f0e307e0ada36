package grpc

// proto.go defines the gRPC server interface and messages of
// treasury.v1.TreasuryService. Messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MoneyMsg represents the proto Money message.
type MoneyMsg struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// GetInvestmentROIRequest represents the proto GetInvestmentROIRequest message.
type GetInvestmentROIRequest struct {
	InvestmentID   string `json:"investment_id"`
	AsOfDate       string `json:"as_of_date"`
	TargetCurrency string `json:"target_currency"`
}

// GetInvestmentROIResponse represents the proto GetInvestmentROIResponse message.
type GetInvestmentROIResponse struct {
	InvestmentID string    `json:"investment_id"`
	AsOfDate     string    `json:"as_of_date"`
	Interest     *MoneyMsg `json:"interest"`
	Principal    *MoneyMsg `json:"principal"`
	Reported     *MoneyMsg `json:"reported,omitempty"`
	Conversion   string    `json:"conversion"`
	FXImpact     string    `json:"fx_impact,omitempty"`
}

// GetPortfolioROIRequest represents the proto GetPortfolioROIRequest message.
type GetPortfolioROIRequest struct {
	InvestmentIDs  []string `json:"investment_ids"`
	AsOfDate       string   `json:"as_of_date"`
	TargetCurrency string   `json:"target_currency"`
}

// ContributionMsg represents the proto Contribution message.
type ContributionMsg struct {
	InvestmentID   string    `json:"investment_id"`
	NativeInterest *MoneyMsg `json:"native_interest"`
	Principal      *MoneyMsg `json:"principal"`
	Reported       string    `json:"reported"`
	Conversion     string    `json:"conversion"`
	Unconvertible  bool      `json:"unconvertible"`
}

// GetPortfolioROIResponse represents the proto GetPortfolioROIResponse message.
type GetPortfolioROIResponse struct {
	AsOfDate      string             `json:"as_of_date"`
	TotalInterest *MoneyMsg          `json:"total_interest"`
	Partial       bool               `json:"partial"`
	Contributions []*ContributionMsg `json:"contributions"`
}

// GetDailySeriesRequest represents the proto GetDailySeriesRequest message.
type GetDailySeriesRequest struct {
	InvestmentID   string `json:"investment_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TargetCurrency string `json:"target_currency"`
}

// DailyPointMsg represents the proto DailyPoint message.
type DailyPointMsg struct {
	Date          string `json:"date"`
	ROI           string `json:"roi"`
	Principal     string `json:"principal"`
	Unconvertible bool   `json:"unconvertible,omitempty"`
}

// GetDailySeriesResponse represents the proto GetDailySeriesResponse message.
type GetDailySeriesResponse struct {
	InvestmentID string           `json:"investment_id"`
	Currency     string           `json:"currency"`
	Points       []*DailyPointMsg `json:"points"`
}

// TreasuryServiceServer is the server API for TreasuryService.
type TreasuryServiceServer interface {
	GetInvestmentROI(context.Context, *GetInvestmentROIRequest) (*GetInvestmentROIResponse, error)
	GetPortfolioROI(context.Context, *GetPortfolioROIRequest) (*GetPortfolioROIResponse, error)
	GetDailySeries(context.Context, *GetDailySeriesRequest) (*GetDailySeriesResponse, error)
	mustEmbedUnimplementedTreasuryServiceServer()
}

// UnimplementedTreasuryServiceServer provides forward-compatible default implementations.
type UnimplementedTreasuryServiceServer struct{}

func (UnimplementedTreasuryServiceServer) GetInvestmentROI(context.Context, *GetInvestmentROIRequest) (*GetInvestmentROIResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetInvestmentROI not implemented")
}
func (UnimplementedTreasuryServiceServer) GetPortfolioROI(context.Context, *GetPortfolioROIRequest) (*GetPortfolioROIResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPortfolioROI not implemented")
}
func (UnimplementedTreasuryServiceServer) GetDailySeries(context.Context, *GetDailySeriesRequest) (*GetDailySeriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDailySeries not implemented")
}
func (UnimplementedTreasuryServiceServer) mustEmbedUnimplementedTreasuryServiceServer() {}

// RegisterTreasuryServiceServer registers the TreasuryServiceServer with the gRPC server.
func RegisterTreasuryServiceServer(s grpclib.ServiceRegistrar, srv TreasuryServiceServer) {
	s.RegisterService(&_TreasuryService_serviceDesc, srv)
}

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "treasury.v1.TreasuryService"

var _TreasuryService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TreasuryServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetInvestmentROI", Handler: _TreasuryService_GetInvestmentROI_Handler},
		{MethodName: "GetPortfolioROI", Handler: _TreasuryService_GetPortfolioROI_Handler},
		{MethodName: "GetDailySeries", Handler: _TreasuryService_GetDailySeries_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "treasury/v1/treasury.proto",
}

func _TreasuryService_GetInvestmentROI_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetInvestmentROIRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreasuryServiceServer).GetInvestmentROI(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetInvestmentROI"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TreasuryServiceServer).GetInvestmentROI(ctx, req.(*GetInvestmentROIRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _TreasuryService_GetPortfolioROI_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetPortfolioROIRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreasuryServiceServer).GetPortfolioROI(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetPortfolioROI"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TreasuryServiceServer).GetPortfolioROI(ctx, req.(*GetPortfolioROIRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _TreasuryService_GetDailySeries_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetDailySeriesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreasuryServiceServer).GetDailySeries(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetDailySeries"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TreasuryServiceServer).GetDailySeries(ctx, req.(*GetDailySeriesRequest))
	}
	return interceptor(ctx, req, info, handler)
}
