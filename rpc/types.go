package rpc

// Transaction outcome statuses reported by getTransaction.
const (
	TransactionStatusNotFound = "NOT_FOUND"
	TransactionStatusSuccess  = "SUCCESS"
	TransactionStatusFailed   = "FAILED"
)

// Submission statuses reported by sendTransaction.
const (
	SendStatusPending       = "PENDING"
	SendStatusDuplicate     = "DUPLICATE"
	SendStatusTryAgainLater = "TRY_AGAIN_LATER"
	SendStatusError         = "ERROR"
)

// GetHealthResponse is the node liveness report.
type GetHealthResponse struct {
	Status       string `json:"status"`
	LatestLedger uint32 `json:"latestLedger"`
}

// SimulateTransactionRequest carries a base64 transaction envelope to
// simulate.
type SimulateTransactionRequest struct {
	Transaction string `json:"transaction"`
}

// SimulateHostFunctionResult is the per-invocation simulation output: the
// base64 return value and the authorization entries the call requires.
type SimulateHostFunctionResult struct {
	Auth []string `json:"auth,omitempty"`
	XDR  string   `json:"xdr,omitempty"`
}

// SimulateTransactionResponse is the simulation outcome. A non-empty Error
// holds the host diagnostic; otherwise TransactionData and MinResourceFee
// carry what the final transaction must include.
type SimulateTransactionResponse struct {
	Error           string                       `json:"error,omitempty"`
	TransactionData string                       `json:"transactionData,omitempty"`
	MinResourceFee  int64                        `json:"minResourceFee,string,omitempty"`
	Results         []SimulateHostFunctionResult `json:"results,omitempty"`
	LatestLedger    uint32                       `json:"latestLedger"`
}

// SendTransactionRequest carries a signed base64 transaction envelope.
type SendTransactionRequest struct {
	Transaction string `json:"transaction"`
}

// SendTransactionResponse acknowledges a submission; it says nothing about
// the eventual outcome.
type SendTransactionResponse struct {
	Status         string `json:"status"`
	Hash           string `json:"hash"`
	ErrorResultXDR string `json:"errorResultXdr,omitempty"`
	LatestLedger   uint32 `json:"latestLedger"`
}

// GetTransactionRequest identifies a submitted transaction by hash.
type GetTransactionRequest struct {
	Hash string `json:"hash"`
}

// GetTransactionResponse is the ledger's verdict on a submitted transaction.
type GetTransactionResponse struct {
	Status        string `json:"status"`
	Ledger        uint32 `json:"ledger,omitempty"`
	EnvelopeXDR   string `json:"envelopeXdr,omitempty"`
	ResultXDR     string `json:"resultXdr,omitempty"`
	ResultMetaXDR string `json:"resultMetaXdr,omitempty"`
}

// GetLedgerEntriesRequest asks for current ledger entries by base64 key.
type GetLedgerEntriesRequest struct {
	Keys []string `json:"keys"`
}

// LedgerEntryResult is one ledger entry: its key and base64 entry data.
type LedgerEntryResult struct {
	Key                string `json:"key"`
	XDR                string `json:"xdr"`
	LastModifiedLedger uint32 `json:"lastModifiedLedgerSeq,omitempty"`
}

// GetLedgerEntriesResponse lists the entries found; absent keys are simply
// missing from Entries.
type GetLedgerEntriesResponse struct {
	Entries      []LedgerEntryResult `json:"entries"`
	LatestLedger uint32              `json:"latestLedger"`
}
