package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/evmcore/evmcore/statedb"
	"github.com/evmcore/evmcore/types"
)

// accountDump is the on-disk shape accepted by -prestate: a flat map of
// address -> account fields, the same shape Ethereum's state-test fixtures
// and geth's `debug_dumpBlock` use for a "prestate" alloc.
type accountDump map[string]accountEntry

type accountEntry struct {
	Balance string            `json:"balance"`
	Nonce   uint64            `json:"nonce"`
	Code    string            `json:"code"`
	Storage map[string]string `json:"storage"`
}

// loadPrestate reads path as JSON and populates ledger with every account
// it names.
func loadPrestate(path string, ledger *statedb.Ledger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading prestate: %w", err)
	}
	var dump accountDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return fmt.Errorf("parsing prestate: %w", err)
	}
	for addrHex, entry := range dump {
		addr := types.HexToAddress(addrHex)
		ledger.CreateAccount(addr)

		if entry.Balance != "" {
			bal, ok := new(big.Int).SetString(strings.TrimPrefix(entry.Balance, "0x"), 16)
			if !ok {
				return fmt.Errorf("account %s: invalid balance %q", addrHex, entry.Balance)
			}
			ledger.AddBalance(addr, bal)
		}
		ledger.SetNonce(addr, entry.Nonce)

		if entry.Code != "" {
			code, err := decodeHex(entry.Code)
			if err != nil {
				return fmt.Errorf("account %s: invalid code: %w", addrHex, err)
			}
			ledger.SetCode(addr, code)
		}
		for keyHex, valHex := range entry.Storage {
			ledger.SetState(addr, types.HexToHash(keyHex), types.HexToHash(valHex))
		}
	}
	ledger.Finalize()
	return nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}
