package eventmodels

// ContractID is the venue-assigned numeric identity of a tradable contract.
// Zero means the identity has not been resolved yet.
type ContractID int64
