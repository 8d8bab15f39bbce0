//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common"
	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/null"
	"github.com/FieldForms/FieldForms/common/service"
	"github.com/FieldForms/FieldForms/common/ulogger"
	"github.com/FieldForms/FieldForms/server/api"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/detect"
	"github.com/FieldForms/FieldForms/server/global"
)

// Swaggo data
// @title FieldForms
// @version 0.3
// @description Field agent form assignment and completion tracking
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var conf *global.ServerConfig
var logger interfaces.Logger
var apiInstance *api.API
var detector *detect.Detector

func main() {

	// Check for version request
	if len(os.Args) == 2 {
		if strings.ToLower(os.Args[1]) == "version" {
			common.Banner(global.Description, global.Version, global.Build)
			exit(0, false)
		}
	}

	// Without arguments run as a service, otherwise interpret the command
	if len(os.Args) == 1 {
		startService()
		return
	}
	console()
	exit(0, false)
}

// console handles interactive commands
func console() {
	var err error

	fmt.Println("")

	// Load or create configuration file
	conf, err = global.Config()
	if err != nil {
		fmt.Printf("Fatal config error: %v\n", err)
		return
	}

	switch strings.ToLower(os.Args[1]) {

	case "admin":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin <code> <secret>")
			return
		}

		d, err := openData(null.Logger())
		if err != nil {
			fmt.Printf("Data error: %s\n", err.Error())
			return
		}
		defer d.Close()

		agent, err := d.SetAdmin(context.Background(), os.Args[2], os.Args[3])
		if err != nil {
			fmt.Printf("Error setting admin: %s\n", err.Error())
			return
		}
		fmt.Printf("Secret set for admin \"%s\" (%s)\n", agent.Code, agent.ID)

	case "migrate":
		hash := len(os.Args) == 3 && os.Args[2] == "--hash-secrets"
		if len(os.Args) > 3 || (len(os.Args) == 3 && !hash) {
			fmt.Println("Usage: migrate [--hash-secrets]")
			return
		}
		migrate(hash)

	case "check":
		d, err := openData(null.Logger())
		if err != nil {
			fmt.Printf("Store check failed: %s\n", err.Error())
			return
		}
		defer d.Close()

		name, err := d.Health(context.Background())
		if err != nil {
			fmt.Printf("Store check failed: %s\n", err.Error())
			return
		}
		fmt.Printf("Store OK: %s\n", name)

	case "foreground":
		global.Debug = true
		startService()

	case "listen":
		if len(os.Args) != 3 {
			fmt.Println("Usage: listen <address>")
			fmt.Printf("Example: %s listen 127.0.0.1:8080\n", global.UnixBinaryName)
			return
		}

		address := os.Args[2]
		if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
			fmt.Printf("Invalid listen address: %v\n", err)
			return
		}

		global.ListenOverride = address
		startService()

	default:
		usage()
	}
}

// migrate upgrades table layouts in place and optionally hashes plaintext secrets
func migrate(hashSecrets bool) {
	ctx := context.Background()

	store, err := data.OpenStore(ctx, conf, null.Logger())
	if err != nil {
		fmt.Printf("Store error: %s\n", err.Error())
		return
	}
	d, err := data.New(conf, store, null.Logger())
	if err != nil {
		fmt.Printf("Data error: %s\n", err.Error())
		_ = store.Close()
		return
	}
	defer d.Close()

	results, err := d.Migrate(ctx)
	for _, r := range results {
		fmt.Printf("%-12s %-10s rows=%d", r.Table, r.Action, r.Rows)
		if len(r.Missing) > 0 {
			fmt.Printf(" added=%s", strings.Join(r.Missing, ","))
		}
		fmt.Println()
	}
	if err != nil {
		fmt.Printf("Migration failed: %s\n", err.Error())
		return
	}

	if hashSecrets {
		n, err := d.HashSecrets(ctx)
		if err != nil {
			fmt.Printf("Hashing secrets failed after %d rows: %s\n", n, err.Error())
			return
		}
		fmt.Printf("Hashed %d plaintext secrets\n", n)
	}
}

// openData opens the store and checks the table layout
func openData(l interfaces.Logger) (*data.Data, error) {
	ctx := context.Background()

	store, err := data.OpenStore(ctx, conf, l)
	if err != nil {
		return nil, err
	}

	d, err := data.New(conf, store, l)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if err = d.Init(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func usage() {
	fmt.Printf("Usage: %s <foreground | listen <address> | admin <code> <secret> | migrate [--hash-secrets] | check | version>\n", os.Args[0])
}

func exit(code int, delay bool) {
	if delay {
		fmt.Printf("\nExiting with code %d in %d seconds...\n\n", code, global.ConsoleExitDelay)
		time.Sleep(global.ConsoleExitDelay * time.Second)
	} else {
		fmt.Printf("\nExiting with code %d\n\n", code)
	}
	os.Exit(code)
}

func startService() {
	var err error

	// Load the configuration unless the console already did
	if conf == nil {
		conf, err = global.Config()
		if err != nil {
			fmt.Printf("Fatal config error: %v\n", err)
			exit(1, false)
		}
	}

	// Create a logger using the loaded configuration
	logger, err = ulogger.New(
		ulogger.WithPrefix(global.LogName),
		ulogger.WithLogFile(conf.SC.Get(global.ConfigLogFile).String()),
		ulogger.WithLogStdout(conf.SC.Get(global.ConfigLogStdout).Bool()),
		ulogger.WithRetention(conf.SC.Get(global.ConfigLogRetention).Int()),
		ulogger.WithDebug(global.Debug))

	if err != nil {
		fmt.Printf("error creating logger: %v\n", err)
		exit(1, false)
	}

	s, err := service.New(
		service.WithServiceName(global.Name),
		service.WithServiceVersion(global.Version, global.Build),
		service.WithLogger(logger),
		service.WithTaskTicker(global.TaskTicker),
		service.WithBackgroundFunc(ServiceBackground),
		service.WithTasksFunc(ServiceTasks),
		service.WithStopFunc(ServiceStopping),
		service.WithSEid(1500))

	if err != nil {
		logger.Fatalf(1005, "unable to create service: %s", err.Error())
		exit(1, false)
	}

	err = s.Start()
	if err != nil {
		logger.Fatalf(1006, "service failed to start: %s", err.Error())
		exit(1, false)
	}
}

// ServiceBackground will be launched as a goroutine when the service starts
func ServiceBackground(logger interfaces.Logger) {
	logger.Infof(1000, "Starting background processes including API")

	// The store may be briefly unreachable at boot, keep trying
	var d *data.Data
	for {
		var err error
		d, err = openData(logger)
		if err == nil {
			break
		}
		logger.Error(1002, "unable to open store, retrying", fields.NewFields(fields.Error(err)))
		time.Sleep(10 * time.Second)
	}

	if name, err := d.Health(context.Background()); err == nil {
		logger.Info(1003, "store connected", fields.NewFields(fields.NewField("store", name)))
	}

	var err error
	detector, err = detect.New(
		detect.WithLogger(logger),
		detect.WithTTL(conf.SC.Get(global.ConfigDetectionTTL).Seconds()),
		detect.WithAllowedOrigins(conf.SC.Get(global.ConfigAllowedOrigins).SplitList()),
		detect.WithInsecureOrigins(conf.SC.Get(global.ConfigAllowInsecure).Bool()),
		detect.WithMarkers(conf.SC.Get(global.ConfigConfirmMarkers).SplitList()),
		detect.WithCompletionFunc(d.RecordCompletion),
		detect.WithEndpoint(conf.SC.Get(global.ConfigExternalURL).String()))
	if err != nil {
		logger.Fatalf(1004, "unable to create detector: %s", err.Error())
		exit(1, false)
	}

	apiInstance = api.New(conf, d, detector, logger)
	go apiInstance.Start()
}

// ServiceTasks will be called at the interval specified by TaskTicker
func ServiceTasks(logger interfaces.Logger) {
	if detector == nil {
		return
	}
	live := detector.Sweep()
	logger.Debug(1010, "detection sweep", fields.NewFields(fields.NewField("live", live)))
}

// ServiceStopping is called when the service is about to exit
func ServiceStopping(logger interfaces.Logger) {
	if apiInstance != nil {
		if err := apiInstance.Stop(); err != nil {
			logger.Infof(1008, "error stopping API: %s", err.Error())
		}
		apiInstance.Close()
	}

	// Save the configuration
	err := conf.Checkpoint()
	if err != nil {
		logger.Infof(1007, "error saving configuration: %s", err.Error())
	}
}
