// Command evmrun drives a single top-level CALL or CREATE through the
// interpreter against an in-memory ledger, for manual experimentation and
// scenario reproduction outside the test suite.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/evmcore/evmcore/core/vm"
	"github.com/evmcore/evmcore/log"
	"github.com/evmcore/evmcore/statedb"
	"github.com/evmcore/evmcore/types"
)

var (
	version = "v0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("evmrun", flag.ContinueOnError)

	codeHex := fs.String("code", "", "Contract bytecode to run, hex-encoded (required unless -to resolves via -prestate)")
	inputHex := fs.String("input", "", "Call data, hex-encoded")
	gas := fs.Uint64("gas", 1_000_000, "Gas limit for the call")
	valueStr := fs.String("value", "0", "Value to transfer, in wei, decimal")
	forkName := fs.String("fork", "Cancun", "Active fork (Frontier..Prague)")
	senderHex := fs.String("sender", "0x0000000000000000000000000000000000000a11c3", "Caller address, hex-encoded")
	toHex := fs.String("to", "", "Recipient address for CALL mode; ignored in -create mode")
	create := fs.Bool("create", false, "Treat -code as init code and run CREATE instead of CALL")
	prestate := fs.String("prestate", "", "Path to a JSON account-dump file to preload before running")
	baseFeeStr := fs.String("basefee", "0", "Block base fee, in wei, decimal (London+)")
	blockNumber := fs.Uint64("blocknumber", 1, "Block number for NUMBER/BLOCKHASH")
	timestamp := fs.Uint64("timestamp", 0, "Block timestamp for TIMESTAMP")
	chainIDStr := fs.String("chainid", "1", "Chain ID for CHAINID")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if *showVersion {
		fmt.Printf("evmrun %s (commit %s)\n", version, commit)
		return 0
	}

	fork, ok := parseFork(*forkName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown fork %q\n", *forkName)
		return 2
	}

	ledger := statedb.New()
	if *prestate != "" {
		if err := loadPrestate(*prestate, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	code, err := decodeHex(*codeHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -code: %v\n", err)
		return 2
	}
	input, err := decodeHex(*inputHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -input: %v\n", err)
		return 2
	}
	value, ok := new(big.Int).SetString(*valueStr, 10)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid -value %q\n", *valueStr)
		return 2
	}
	baseFee, ok := new(big.Int).SetString(*baseFeeStr, 10)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid -basefee %q\n", *baseFeeStr)
		return 2
	}
	chainID, ok := new(big.Int).SetString(*chainIDStr, 10)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid -chainid %q\n", *chainIDStr)
		return 2
	}

	sender := types.HexToAddress(*senderHex)
	logger := log.Default().Module("evmrun")

	txCtx := vm.TxContext{Origin: sender, GasPrice: big.NewInt(0)}
	blockCtx := vm.BlockContext{
		Coinbase:    types.Address{},
		GasLimit:    30_000_000,
		Number:      *blockNumber,
		Timestamp:   *timestamp,
		Difficulty:  big.NewInt(0),
		PrevRandao:  types.Hash{},
		BaseFee:     baseFee,
		BlobBaseFee: big.NewInt(0),
		ChainID:     chainID,
		GetHash:     ledger.GetBlockHash,
	}

	evm := vm.NewEVM(fork, ledger, txCtx, blockCtx, nil)

	logger.Info("executing", "fork", fork.String(), "create", *create, "gas", *gas, "value", value.String())

	if *create {
		if !ledger.Exist(sender) {
			ledger.CreateAccount(sender)
		}
		ret, addr, gasLeft, err := evm.Create(sender, code, *gas, value)
		report(logger, *gas, gasLeft, ret, addr, ledger, err)
		if err != nil {
			return 1
		}
		return 0
	}

	if *toHex == "" {
		fmt.Fprintln(os.Stderr, "Error: -to is required unless -create is set")
		return 2
	}
	to := types.HexToAddress(*toHex)
	if !ledger.Exist(to) {
		ledger.CreateAccount(to)
	}
	if len(code) > 0 {
		ledger.SetCode(to, code)
	}
	ret, gasLeft, err := evm.Call(sender, to, input, *gas, value)
	report(logger, *gas, gasLeft, ret, to, ledger, err)
	if err != nil {
		return 1
	}
	return 0
}

func report(logger *log.Logger, gasLimit, gasLeft uint64, ret []byte, contractAddr types.Address, ledger *statedb.Ledger, err error) {
	fmt.Printf("gas used:    %d\n", gasLimit-gasLeft)
	fmt.Printf("gas left:    %d\n", gasLeft)
	fmt.Printf("output:      0x%x\n", ret)
	fmt.Printf("contract:    %s\n", contractAddr.Hex())
	if err != nil {
		fmt.Printf("error:       %v\n", err)
	}
	for _, l := range ledger.Logs() {
		var topics []string
		for _, t := range l.Topics {
			topics = append(topics, t.Hex())
		}
		fmt.Printf("log:         %s topics=[%s] data=0x%x\n", l.Address.Hex(), strings.Join(topics, ","), l.Data)
	}
	if err != nil {
		logger.Error("execution failed", "err", err)
	} else {
		logger.Info("execution finished", "gasUsed", gasLimit-gasLeft)
	}
}

func parseFork(name string) (vm.Fork, bool) {
	switch strings.ToLower(name) {
	case "frontier":
		return vm.Frontier, true
	case "homestead":
		return vm.Homestead, true
	case "tangerinewhistle", "eip150":
		return vm.TangerineWhistle, true
	case "spuriousdragon", "eip158":
		return vm.SpuriousDragon, true
	case "byzantium":
		return vm.Byzantium, true
	case "constantinople":
		return vm.Constantinople, true
	case "petersburg":
		return vm.Petersburg, true
	case "istanbul":
		return vm.Istanbul, true
	case "berlin":
		return vm.Berlin, true
	case "london":
		return vm.London, true
	case "merge", "paris":
		return vm.Merge, true
	case "shanghai":
		return vm.Shanghai, true
	case "cancun":
		return vm.Cancun, true
	case "prague":
		return vm.Prague, true
	default:
		return 0, false
	}
}
