package cmd

import (
	"github.com/msalah0e/fastkey/internal/generate"
	"github.com/spf13/cobra"
)

// keyFlags are the key-selection flags shared by generate and token.
type keyFlags struct {
	keyPath      string
	keyID        string
	issuerID     string
	inHouse      bool
	fromVault    bool
	skipValidate bool
}

func (f *keyFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.keyPath, "key", "k", "", "Path to the AuthKey_<KEYID>.p8 file")
	fl.StringVar(&f.keyID, "key-id", "", "Key ID (inferred from the key file name when omitted)")
	fl.StringVar(&f.issuerID, "issuer-id", "", "Issuer ID (defaults to $"+generate.IssuerEnv+")")
	fl.BoolVar(&f.inHouse, "in-house", false, "Mark the key as an enterprise (in-house) key")
	fl.BoolVar(&f.fromVault, "from-vault", false, "Read the key from the vault instead of a file")
	fl.BoolVar(&f.skipValidate, "skip-validate", false, "Use the key text as-is without parsing it")
}

func (f *keyFlags) request(cmd *cobra.Command, profile string) generate.Request {
	req := generate.Request{
		Profile:   profile,
		KeyPath:   f.keyPath,
		KeyID:     f.keyID,
		IssuerID:  f.issuerID,
		FromVault: f.fromVault,
	}
	if cmd.Flags().Changed("in-house") {
		v := f.inHouse
		req.InHouse = &v
	}
	return req
}

func profileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
