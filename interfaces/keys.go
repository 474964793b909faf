package interfaces

// KeyObject is the exported view of a derived key node, sufficient for audit
// and display without re-deriving.
type KeyObject struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Mnemonic   string `json:"mnemonic"`
	Path       string `json:"path"`
	Index      uint32 `json:"index"`
	Depth      uint8  `json:"depth"`
}

// KeyMaterial is a read-only snapshot of a chain signer's keys.
type KeyMaterial struct {
	PrivateKeyHex string `json:"private_key"`
	PublicKeyHex  string `json:"public_key"`
	Address       string `json:"address"`
	Path          string `json:"path"`
}
