/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command customerctl provisions the customer table, imports customer files and
// queries customers.
//
//	customerctl -config customerctl.yaml -data s3://imports/customerdata.json
//	customerctl -id 3 -dtid 1
//	customerctl -last-name Smith
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/suparena/customerstore"
	"github.com/suparena/customerstore/config"
	"github.com/suparena/customerstore/datastore/ddb"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/logging"
	"github.com/suparena/customerstore/provision"
	"github.com/suparena/customerstore/source"
)

var (
	configFlag   = flag.String("config", "", "Path to a YAML configuration file")
	envFileFlag  = flag.String("env-file", config.DefaultEnvFile, "Path to a .env file with overrides")
	dataFlag     = flag.String("data", "", "Import customers from a JSON array file or s3://bucket/key")
	idFlag       = flag.Int64("id", -1, "Print the customer with this Id")
	dtidFlag     = flag.Int64("dtid", -1, "DTID of the customer to print (tables with a sort key)")
	lastNameFlag = flag.String("last-name", "", "Print customers with this last name")
	scanFlag     = flag.Bool("scan", false, "Print every customer")
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		fmt.Println(customerstore.GetVersionInfo())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "customerctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load(*configFlag, config.WithEnvFile(*envFileFlag))
	if err != nil {
		return err
	}
	logger := logging.Configure(cfg.Logging)

	client, err := ddb.NewFromConfig(ctx, cfg.Connection(), ddb.WithLogger(logger))
	if err != nil {
		return err
	}

	handle, err := provision.New(client,
		provision.WithConfig(cfg.Provisioning),
		provision.WithLogger(logger),
	).Ensure(ctx, cfg.TableSchema())
	if err != nil {
		return err
	}

	repo := customerstore.NewRepository(client, handle,
		customerstore.WithLogger(logger),
		customerstore.WithPageSize(cfg.Table.PageSize),
	)

	if *dataFlag != "" {
		if err := importFile(ctx, cfg, repo, logger, *dataFlag); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if *idFlag >= 0 {
		var dtid *int64
		if *dtidFlag >= 0 {
			dtid = dtidFlag
		}
		rec, err := repo.GetByKey(ctx, *idFlag, dtid)
		switch {
		case errors.IsNotFound(err):
			logger.Warn().Int64("id", *idFlag).Msg("customer not found")
		case err != nil:
			return err
		default:
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
	}

	if *lastNameFlag != "" {
		result, err := repo.FindByLastName(ctx, *lastNameFlag)
		if err != nil {
			return err
		}
		if err := printResult(enc, logger, result); err != nil {
			return err
		}
	}

	if *scanFlag {
		result, err := repo.ScanAll(ctx)
		if result != nil {
			if perr := printResult(enc, logger, result); perr != nil {
				return perr
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func importFile(ctx context.Context, cfg *config.Config, repo *customerstore.Repository, logger zerolog.Logger, uri string) error {
	awsCfg, err := ddb.LoadAWSConfig(ctx, cfg.Connection())
	if err != nil {
		return err
	}
	f, err := source.NewOpener(s3.NewFromConfig(awsCfg)).Open(ctx, uri)
	if err != nil {
		return err
	}
	defer f.Close()

	summary, err := repo.Import(ctx, f, customerstore.WithImportOptions(customerstore.ImportOptions{
		SkipExisting:  cfg.Import.SkipExisting,
		Strict:        cfg.Import.Strict,
		ProgressEvery: cfg.Import.ProgressEvery,
	}))
	if err != nil {
		return err
	}
	for _, failure := range summary.Failures {
		logger.Warn().Err(failure.Err).Int64("index", failure.Index).Msg("not imported")
	}
	logger.Info().
		Str("source", f.URI).
		Int64("imported", summary.Imported).
		Int64("skipped", summary.Skipped).
		Int64("failed", summary.Failed()).
		Msg("import complete")
	return nil
}

func printResult(enc *json.Encoder, logger zerolog.Logger, result *customerstore.ScanResult) error {
	for _, failure := range result.Failures {
		logger.Warn().Err(failure.Err).Int64("index", failure.Index).Msg("malformed customer")
	}
	return enc.Encode(result.Records)
}
