package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"heatsim/internal/heatio"
)

func newRootCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:           "heatergen numHeaters tempMin tempMax height width fileName",
		Short:         "Write a heater file with randomly placed heaters",
		Args:          cobra.ExactArgs(6),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, a []string) error {
			n, err := strconv.Atoi(a[0])
			if err != nil {
				return fmt.Errorf("numHeaters: %q is not an integer", a[0])
			}
			tmin, err := strconv.ParseFloat(a[1], 64)
			if err != nil {
				return fmt.Errorf("tempMin: %q is not a number", a[1])
			}
			tmax, err := strconv.ParseFloat(a[2], 64)
			if err != nil {
				return fmt.Errorf("tempMax: %q is not a number", a[2])
			}
			height, err := strconv.Atoi(a[3])
			if err != nil {
				return fmt.Errorf("height: %q is not an integer", a[3])
			}
			width, err := strconv.Atoi(a[4])
			if err != nil {
				return fmt.Errorf("width: %q is not an integer", a[4])
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			heaters, err := heatio.GenerateHeaters(rand.New(rand.NewSource(seed)), n, tmin, tmax, height, width)
			if err != nil {
				return err
			}
			f, err := os.Create(a[5])
			if err != nil {
				return err
			}
			if err := heatio.WriteHeaters(f, heaters); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Printf("%d heaters written to %s\n", n, a[5])
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (defaults to the current time)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
