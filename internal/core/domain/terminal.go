package domain

// TerminalCredentials authenticate a request against the payment terminal
// integration. Every operation requires them.
type TerminalCredentials struct {
	User string
	Key  string
}

// TerminalRequest is the wire-level shape handed to the terminal client:
// envelope credentials plus the ordered fields of the transaction body.
// Fields with empty values are omitted from the rendered envelope.
type TerminalRequest struct {
	Credentials TerminalCredentials
	Fields      []Param
}

// TerminalPurchase starts a card purchase on the terminal.
type TerminalPurchase struct {
	Credentials TerminalCredentials
	Amount      string
	Currency    string
	Station     string
	TxnRef      string
	DeviceID    string
	PosName     string
	PosVersion  string
	VendorID    string
	MRef        string
}

// TerminalRefund refunds a prior purchase matched by DpsTxnRef.
type TerminalRefund struct {
	Credentials TerminalCredentials
	Amount      string
	Currency    string
	Station     string
	TxnRef      string
	DpsTxnRef   string
	DeviceID    string
	PosName     string
	VendorID    string
	MRef        string
}

// TerminalUnmatchedRefund refunds without a matching purchase reference.
type TerminalUnmatchedRefund struct {
	Credentials TerminalCredentials
	Amount      string
	Currency    string
	Station     string
	TxnRef      string
	DeviceID    string
	PosName     string
	VendorID    string
	MRef        string
}

// TerminalReversal voids an in-flight or completed transaction.
type TerminalReversal struct {
	Credentials TerminalCredentials
	Station     string
	TxnRef      string
}

// TerminalStatus queries the outcome of a transaction.
type TerminalStatus struct {
	Credentials TerminalCredentials
	Station     string
	TxnRef      string
}

// TerminalReceipt retrieves (or, with Action "Print", prints) a receipt.
type TerminalReceipt struct {
	Credentials   TerminalCredentials
	Station       string
	TxnRef        string
	ReceiptType   int
	DuplicateFlag int
	Printer       string
	Action        string
}

// TerminalEnterData prompts for operator input on the pinpad.
type TerminalEnterData struct {
	Credentials TerminalCredentials
	Station     string
	CmdSeq      int
	PromptID    int
	Timeout     int
}

// TerminalPinpadDisplay pushes a display prompt to the pinpad.
type TerminalPinpadDisplay struct {
	Credentials TerminalCredentials
	Station     string
	CmdSeq      int
	PromptID    int
	Param1      string
	Param2      string
	Timeout     int
}

// TerminalReadCard requests a card read on the terminal.
type TerminalReadCard struct {
	Credentials TerminalCredentials
	Station     string
	TxnRef      string
}

// TerminalSettlementSummary requests the terminal's settlement totals.
type TerminalSettlementSummary struct {
	Credentials TerminalCredentials
	Station     string
}

// TerminalPing checks terminal connectivity.
type TerminalPing struct {
	Credentials TerminalCredentials
}

// TerminalButtonPress answers an on-screen UI prompt. Name must be one of
// the two physical buttons and Val one of the three response words.
type TerminalButtonPress struct {
	Credentials TerminalCredentials
	Station     string
	Name        string
	Val         string
	TxnRef      string
}
