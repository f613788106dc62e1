package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// LoginRequest defines the payload for the login endpoint. UserID and
// Password fall back to the configured backend credentials when omitted.
type LoginRequest struct {
	TCCNum   int    `json:"tcc_num" binding:"required"`
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// LoginResponse carries the backend result code and, on success, a token.
type LoginResponse struct {
	ResultCode  int    `json:"result_code"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
}

// LogoffRequest defines the payload for the logoff endpoint.
type LogoffRequest struct {
	TCCNum int `json:"tcc_num" binding:"required"`
}

// LogoffResponse reports the backend's logoff outcome.
type LogoffResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AmountDueResponse is returned by the ticket lookup endpoints.
type AmountDueResponse struct {
	CardNumber string `json:"card_number"`
	AmountDue  string `json:"amount_due"`
}

// RebateRequest defines a discount application. Zero is a meaningful
// value for every field, hence the pointers.
type RebateRequest struct {
	DiscountType    *int `json:"discount_type" binding:"required"`
	DiscountValue   *int `json:"discount_value" binding:"required"`
	DiscountAccount *int `json:"discount_account" binding:"required"`
}

// RebateResponse echoes the backend's rebate confirmation.
type RebateResponse struct {
	Result string `json:"result"`
}

// SettlementRequest defines a payment against a ticket.
type SettlementRequest struct {
	AmountPaid float64 `json:"amount_paid" binding:"required,gt=0"`
}

// SettlementResponse bundles the orchestrated settlement outcome.
type SettlementResponse struct {
	Result                 string             `json:"result"`
	AmountDueBeforePayment string             `json:"amount_due_before_payment"`
	SoapResponse           domain.RemoteValue `json:"soap_response"`
}

// ClearResponse is returned after a successful setCleared call.
type ClearResponse struct {
	Message string `json:"message"`
	Result  string `json:"result"`
}

// ManualTicketRequest defines a surrogate ticket tariff calculation.
type ManualTicketRequest struct {
	CarparkNr *int      `json:"carpark_nr" binding:"required"`
	CardType  *int      `json:"card_type" binding:"required"`
	TariffID  *int      `json:"tariff_id" binding:"required"`
	TimeEntry time.Time `json:"time_entry" binding:"required"`
	TimeExit  time.Time `json:"time_exit" binding:"required"`
}

// CustomerRequest defines the customer master data lookup payload.
type CustomerRequest struct {
	User     string `json:"user" binding:"required"`
	Pwd      string `json:"pwd" binding:"required"`
	PersonID *int   `json:"personId" binding:"required"`
}

// CardCarrierRequest defines the card-by-carrier lookup payload.
type CardCarrierRequest struct {
	User          string `json:"user" binding:"required"`
	Pwd           string `json:"pwd" binding:"required"`
	CardCarrierNr string `json:"cardCarrierNr" binding:"required"`
}

// PMStringRequest defines the PM string lookup payload.
type PMStringRequest struct {
	User        string `json:"user" binding:"required"`
	Pwd         string `json:"pwd" binding:"required"`
	ShortCardNr string `json:"shortCardNr" binding:"required"`
}

// PMStringResponse carries the resolved PM string.
type PMStringResponse struct {
	PMString string `json:"pmString"`
}

// ShortCardNrRequest defines the credential-less short card lookup.
type ShortCardNrRequest struct {
	ShortCardNr string `json:"shortCardNr" binding:"required"`
}

// ShortCardNrResponse carries the resolved card number.
type ShortCardNrResponse struct {
	ShortCardNr string `json:"shortCardNr"`
}

// CardInfoRequest defines the card detail lookup payload.
type CardInfoRequest struct {
	TccNum     *int   `json:"TccNum" binding:"required"`
	CardNumber string `json:"CardNumber" binding:"required"`
}

// CardInfoResponse wraps the backend's card detail reply.
type CardInfoResponse struct {
	CardInfo domain.RemoteValue `json:"cardInfo"`
}

// DeviceStateResponse wraps the backend's device state overview.
type DeviceStateResponse struct {
	State domain.RemoteValue `json:"state"`
}

// CountersResponse wraps the extended carpark occupancy counters.
type CountersResponse struct {
	Counters domain.RemoteValue `json:"counters"`
}

// TerminalResponse is returned by every payment terminal endpoint: the
// parsed terminal reply merged with echoed request fields.
type TerminalResponse struct {
	Status   string            `json:"status"`
	Windcave map[string]string `json:"windcave"`
}

// PurchaseRequest starts a terminal purchase.
type PurchaseRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency" binding:"required"`
	Station    string  `json:"station" binding:"required"`
	TxnRef     string  `json:"txnRef" binding:"required"`
	DeviceID   string  `json:"deviceId" binding:"required"`
	User       string  `json:"user" binding:"required"`
	Key        string  `json:"key" binding:"required"`
	PosName    string  `json:"posName"`
	PosVersion string  `json:"posVersion"`
	VendorID   string  `json:"vendorId"`
	MRef       string  `json:"mref"`
}

// RefundRequest refunds a prior purchase; DpsTxnRef matches the original
// transaction.
type RefundRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency" binding:"required"`
	Station   string  `json:"station" binding:"required"`
	TxnRef    string  `json:"txnRef" binding:"required"`
	DpsTxnRef string  `json:"dpsTxnRef" binding:"required"`
	DeviceID  string  `json:"deviceId" binding:"required"`
	PosName   string  `json:"posName"`
	VendorID  string  `json:"vendorId"`
	MRef      string  `json:"mref"`
	User      string  `json:"user" binding:"required"`
	Key       string  `json:"key" binding:"required"`
}

// UnmatchedRefundRequest refunds without a matching purchase reference.
type UnmatchedRefundRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required"`
	Station  string  `json:"station" binding:"required"`
	TxnRef   string  `json:"txnRef" binding:"required"`
	DeviceID string  `json:"deviceId" binding:"required"`
	PosName  string  `json:"posName" binding:"required"`
	VendorID string  `json:"vendorId" binding:"required"`
	MRef     string  `json:"mref" binding:"required"`
	User     string  `json:"user" binding:"required"`
	Key      string  `json:"key" binding:"required"`
}

// ReversalRequest voids a transaction by reference.
type ReversalRequest struct {
	TxnRef  string `json:"txnRef" binding:"required"`
	Station string `json:"station" binding:"required"`
	User    string `json:"user" binding:"required"`
	Key     string `json:"key" binding:"required"`
}

// StatusRequest queries a transaction outcome by reference.
type StatusRequest struct {
	TxnRef  string `json:"txnRef" binding:"required"`
	Station string `json:"station" binding:"required"`
	User    string `json:"user" binding:"required"`
	Key     string `json:"key" binding:"required"`
}

// ReceiptRequest retrieves receipt text for a transaction.
type ReceiptRequest struct {
	TxnRef        string `json:"txnRef" binding:"required"`
	Station       string `json:"station" binding:"required"`
	ReceiptType   int    `json:"receiptType" binding:"required"`
	DuplicateFlag int    `json:"duplicateFlag"`
	User          string `json:"user" binding:"required"`
	Key           string `json:"key" binding:"required"`
}

// ReceiptPrintRequest prints a receipt on the terminal.
type ReceiptPrintRequest struct {
	Station       string `json:"station" binding:"required"`
	TxnRef        string `json:"txnRef" binding:"required"`
	ReceiptType   int    `json:"receiptType" binding:"required"`
	DuplicateFlag int    `json:"duplicateFlag"`
	Printer       string `json:"printer"`
	User          string `json:"user" binding:"required"`
	Key           string `json:"key" binding:"required"`
}

// EnterDataRequest prompts for operator input on the pinpad.
type EnterDataRequest struct {
	Station  string `json:"station" binding:"required"`
	CmdSeq   int    `json:"cmdSeq" binding:"required"`
	PromptID int    `json:"promptId" binding:"required"`
	Timeout  int    `json:"timeout" binding:"required"`
	User     string `json:"user" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

// PinpadDisplayRequest pushes a display prompt to the pinpad.
type PinpadDisplayRequest struct {
	Station  string `json:"station" binding:"required"`
	CmdSeq   int    `json:"cmdSeq" binding:"required"`
	PromptID int    `json:"promptId" binding:"required"`
	Param1   string `json:"param1" binding:"required"`
	Param2   string `json:"param2" binding:"required"`
	Timeout  int    `json:"timeout" binding:"required"`
	User     string `json:"user" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

// ReadCardRequest requests a card read.
type ReadCardRequest struct {
	Station string `json:"station" binding:"required"`
	TxnRef  string `json:"txnRef" binding:"required"`
	User    string `json:"user" binding:"required"`
	Key     string `json:"key" binding:"required"`
}

// SettlementSummaryRequest requests the terminal's settlement totals.
type SettlementSummaryRequest struct {
	Station string `json:"station" binding:"required"`
	User    string `json:"user" binding:"required"`
	Key     string `json:"key" binding:"required"`
}

// PingRequest checks terminal connectivity.
type PingRequest struct {
	User string `json:"user" binding:"required"`
	Key  string `json:"key" binding:"required"`
}

// UIButtonRequest answers an on-screen prompt.
type UIButtonRequest struct {
	Station string `json:"station" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Val     string `json:"val" binding:"required"`
	TxnRef  string `json:"txnRef" binding:"required"`
	User    string `json:"user" binding:"required"`
	Key     string `json:"key" binding:"required"`
}
