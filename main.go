package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crillab/gopherdrat/check"
)

func main() {
	debug.SetGCPercent(300)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gopherdrat",
		Short:        "gopherdrat checks DRAT unsatisfiability certificates",
		SilenceUsage: true,
	}
	cmd.AddCommand(newCheckCmd())
	return cmd
}

type options struct {
	verbose bool
	stats   bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "sets verbose mode on")
	fs.BoolVar(&o.stats, "stats", false, "prints problem statistics before checking")
}

func (o *options) logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newCheckCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "check file.cnf proof.drat",
		Short: "check replays a DRAT certificate against a DIMACS problem",
		Long: `check replays a DRAT certificate against a DIMACS problem and prints
"s VERIFIED" when every certificate step is justified and unsatisfiability
is derived, "s NOT VERIFIED" otherwise. Clause-carrying comment records
produced by an SMT front end ("c a", "c ba", "c euf") are replayed too;
bridge and ad-hoc records are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(o, args[0], args[1])
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func runCheck(o *options, cnfPath, proofPath string) error {
	logger := o.logger()
	fmt.Printf("c checking %s against %s\n", proofPath, cnfPath)
	pb, err := parseProblem(cnfPath)
	if err != nil {
		return err
	}
	if o.stats {
		fmt.Printf("c Number of clauses   : %9d\n", len(pb.Clauses))
		fmt.Printf("c Number of variables : %9d\n", pb.NbVars)
	}
	proof, err := os.Open(proofPath)
	if err != nil {
		return errors.Wrapf(err, "could not open %q", proofPath)
	}
	defer proof.Close()
	logger.WithFields(logrus.Fields{"problem": cnfPath, "proof": proofPath}).Debug("replaying certificate")
	valid, err := pb.Unsat(proof)
	if err != nil {
		return errors.Wrapf(err, "could not check certificate %q", proofPath)
	}
	if !valid {
		fmt.Println("s NOT VERIFIED")
		os.Exit(1)
	}
	fmt.Println("s VERIFIED")
	return nil
}

func parseProblem(path string) (*check.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	pb, err := check.ParseCNF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse DIMACS file %q", path)
	}
	return pb, nil
}
