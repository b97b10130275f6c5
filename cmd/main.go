package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rds-restore/internal/controller"
	"rds-restore/internal/selection"
	"rds-restore/internal/utils"
	"rds-restore/pkg/aws"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/config"
	"rds-restore/pkg/storage"
	"rds-restore/pkg/tui"
	"rds-restore/pkg/webserver"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	region        string
	profile       string
	instanceID    string
	snapshotID    string
	newName       string
	verbose       bool
	logLevel      string
	logFile       string
	webPort       int
	validateCreds bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "rds-restore",
		Short:        "Restore AWS RDS instances from snapshots",
		Long:         "A console for browsing RDS instances and their snapshots per region and restoring a snapshot into a new DB instance",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.rds-restore.yaml)")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region (overrides config)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS shared config profile (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append diagnostic logs to this file instead of stderr")

	// Regions command
	var regionsCmd = &cobra.Command{
		Use:   "regions",
		Short: "List the regions the account can use",
		RunE:  runRegions,
	}

	// Instances command
	var instancesCmd = &cobra.Command{
		Use:   "instances",
		Short: "List the DB instances of a region",
		RunE:  runInstances,
	}

	// Snapshots command
	var snapshotsCmd = &cobra.Command{
		Use:   "snapshots",
		Short: "List the snapshots of a DB instance, newest first",
		RunE:  runSnapshots,
	}

	snapshotsCmd.Flags().StringVarP(&instanceID, "instance", "i", "", "DB instance identifier (required)")
	if err := snapshotsCmd.MarkFlagRequired("instance"); err != nil {
		log.Fatal(err)
	}

	// Restore command
	var restoreCmd = &cobra.Command{
		Use:   "restore",
		Short: "Restore a snapshot into a new DB instance",
		Long:  "Submit a restore of a snapshot into a new DB instance. The command returns once AWS accepted the request; it does not wait for the instance.",
		RunE:  runRestore,
	}

	restoreCmd.Flags().StringVarP(&instanceID, "instance", "i", "", "Source DB instance identifier (required)")
	restoreCmd.Flags().StringVarP(&snapshotID, "snapshot", "s", "", "Snapshot identifier (required)")
	restoreCmd.Flags().StringVarP(&newName, "name", "n", "", "Identifier of the new DB instance (required)")
	for _, name := range []string{"instance", "snapshot", "name"} {
		if err := restoreCmd.MarkFlagRequired(name); err != nil {
			log.Fatal(err)
		}
	}

	// Web command
	var webCmd = &cobra.Command{
		Use:   "web",
		Short: "Start web server",
		Long:  "Start a web server serving the restore form in a browser",
		RunE:  runWeb,
	}

	webCmd.Flags().IntVarP(&webPort, "port", "p", 0, "Port to run the web server on (default from config, 8080)")

	// TUI command
	var tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal interface",
		RunE:  runTUI,
	}

	regionsCmd.Flags().BoolVarP(&validateCreds, "validate", "V", false, "Check credentials before listing")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(instancesCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles what every command needs
type session struct {
	cfg     *config.Config
	gateway cloud.Gateway
	logger  *logrus.Logger
	closer  io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}

// newSession loads configuration, applies flag overrides, and builds the logger and gateway
func newSession(defaultOutput io.Writer) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if region != "" {
		cfg.AWS.Region = region
	}
	if profile != "" {
		cfg.AWS.Profile = profile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	logger, closer, err := newLogger(cfg.Log, defaultOutput)
	if err != nil {
		return nil, err
	}

	provider, err := aws.NewProvider(cloud.ProviderConfig{
		Region:    cfg.AWS.Region,
		Profile:   cfg.AWS.Profile,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
		Endpoint:  cfg.AWS.Endpoint,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("failed to create AWS provider: %w", err)
	}

	// a region given on the command line must be one the account can use
	if region != "" {
		if err := checkRegion(provider, cfg.AWS.Region); err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, err
		}
	}

	logger.WithFields(logrus.Fields{
		"region":  cfg.AWS.Region,
		"profile": cfg.AWS.Profile,
	}).Debug("Created AWS provider")

	return &session{cfg: cfg, gateway: provider, logger: logger, closer: closer}, nil
}

// newLogger builds the diagnostic logger. A log file is opened in append mode.
func newLogger(cfg config.LogConfig, defaultOutput io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.SetLevel(getLogLevel(cfg.Level))
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if cfg.File == "" {
		logger.SetOutput(defaultOutput)
		return logger, nil, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// getLogLevel parses log level string to logrus level
func getLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// checkRegion rejects a region that is not in the gateway's region list
func checkRegion(gw cloud.Gateway, name string) error {
	regions, err := gw.ListRegions()
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}
	if err := utils.ValidateRegion(name, regions); err != nil {
		return fmt.Errorf("invalid --region: %w", err)
	}
	return nil
}

// checkRestoreName rejects a malformed --name before any AWS call is made
func checkRestoreName(name string) error {
	if err := utils.ValidateDBIdentifier(name); err != nil {
		return fmt.Errorf("invalid --name: %w", err)
	}
	return nil
}

func startSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " " + suffix
	s.Start()
	return s
}

func runRegions(cmd *cobra.Command, args []string) error {
	sess, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	if validateCreds {
		if err := sess.gateway.ValidateCredentials(); err != nil {
			return fmt.Errorf("failed to validate AWS credentials: %w", err)
		}
	}

	s := startSpinner("Loading regions ...")
	regions, err := sess.gateway.ListRegions()
	s.Stop()
	if err != nil {
		return err
	}

	for _, r := range regions {
		marker := " "
		if r == sess.cfg.AWS.Region {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, r)
	}
	return nil
}

func runInstances(cmd *cobra.Command, args []string) error {
	sess, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	st := selection.New(sess.gateway, sess.cfg.AWS.Region)

	s := startSpinner(fmt.Sprintf("Loading DB instances in %s ...", st.Region()))
	err = st.Refresh()
	s.Stop()
	if err != nil {
		return err
	}

	if len(st.Instances()) == 0 {
		fmt.Printf("No DB instances found in %s.\n", st.Region())
		return nil
	}

	fmt.Printf("%-40s %-14s %-12s %-10s %-10s\n", "NAME", "STATUS", "ENGINE", "STORAGE", "MAX")
	for _, inst := range st.Instances() {
		fmt.Printf("%-40s %-14s %-12s %-10s %-10s\n",
			inst.Identifier,
			inst.Status,
			inst.Engine,
			utils.FormatStorage(inst.AllocatedStorage),
			utils.FormatStorage(inst.MaxAllocatedStorage))
	}
	return nil
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	sess, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	st := selection.New(sess.gateway, sess.cfg.AWS.Region)

	s := startSpinner(fmt.Sprintf("Loading snapshots of %s ...", instanceID))
	err = loadSnapshots(st, instanceID)
	s.Stop()
	if err != nil {
		return err
	}

	if len(st.Snapshots()) == 0 {
		fmt.Printf("No snapshots found for %s.\n", instanceID)
		return nil
	}

	now := time.Now()
	fmt.Printf("%-50s %-24s %-8s %-12s\n", "NAME", "CREATED", "AGE", "STATUS")
	for _, snap := range st.Snapshots() {
		fmt.Printf("%-50s %-24s %-8s %-12s\n",
			snap.Identifier,
			utils.FormatTimestamp(snap.CreatedAt),
			utils.FormatAge(snap.CreatedAt, now),
			snap.Status)
	}
	return nil
}

// loadSnapshots fetches the instances of the state's region and selects instance id
func loadSnapshots(st *selection.State, id string) error {
	if err := st.Refresh(); err != nil {
		return err
	}
	idx := st.InstanceIndex(id)
	if idx < 0 {
		return fmt.Errorf("DB instance %s not found in %s", id, st.Region())
	}
	return st.SelectInstance(idx)
}

// runRestore drives the same events as the form: select the instance, select the
// snapshot, click restore
func runRestore(cmd *cobra.Command, args []string) error {
	if err := checkRestoreName(newName); err != nil {
		return err
	}

	sess, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	c := controller.New(sess.gateway, sess.cfg.AWS.Region, storage.NewActivityLog(), sess.logger)

	s := startSpinner("Loading ...")
	out := c.Open()
	s.Stop()
	if out.Err != nil {
		return out.Err
	}

	v := c.View()
	instanceIdx := -1
	for i, inst := range v.Instances {
		if inst.Identifier == instanceID {
			instanceIdx = i
		}
	}
	if instanceIdx < 0 {
		return fmt.Errorf("DB instance %s not found in %s", instanceID, v.Region)
	}

	s = startSpinner(fmt.Sprintf("Loading snapshots of %s ...", instanceID))
	out = c.Dispatch(controller.Event{Kind: controller.ClickInstanceRow, Index: instanceIdx})
	s.Stop()
	if out.Err != nil {
		return out.Err
	}

	v = c.View()
	snapshotIdx := -1
	for i, snap := range v.Snapshots {
		if snap.Identifier == snapshotID {
			snapshotIdx = i
		}
	}
	if snapshotIdx >= 0 {
		if out = c.Dispatch(controller.Event{Kind: controller.ClickSnapshotRow, Index: snapshotIdx}); out.Err != nil {
			return out.Err
		}
	} else if len(v.Snapshots) > 0 {
		return fmt.Errorf("snapshot %s not found for %s", snapshotID, instanceID)
	}

	out = c.Dispatch(controller.Event{Kind: controller.ClickRestore, Name: newName})

	switch {
	case out.Err != nil:
		return out.Err
	case out.Confirmation == nil:
		return errors.New(out.Message)
	}

	fmt.Println(out.Message)
	return nil
}

func runWeb(cmd *cobra.Command, args []string) error {
	sess, err := newSession(os.Stdout)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.gateway.ValidateCredentials(); err != nil {
		return fmt.Errorf("failed to validate AWS credentials: %w", err)
	}

	port := sess.cfg.Web.Port
	if webPort != 0 {
		port = webPort
	}

	c := controller.New(sess.gateway, sess.cfg.AWS.Region, storage.NewActivityLog(), sess.logger)
	loop := controller.NewLoop(c, sess.logger)
	loop.Start()
	defer loop.Stop()

	if out, err := loop.Open(); err != nil {
		return err
	} else if out.Err != nil {
		sess.logger.WithError(out.Err).Warn("Initial load failed; use Refresh in the browser")
	}

	server := webserver.NewServer(loop, sess.logger, port)

	fmt.Printf("RDS Restore web server starting on http://localhost:%d\n", port)
	fmt.Println("Open your browser and navigate to the address above.")
	fmt.Println("Press Ctrl+C to stop the server.")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for interrupt signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sig:
		_, _ = loop.Dispatch(controller.Event{Kind: controller.WindowClosing})
		fmt.Println("Server stopped.")
		return nil
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the terminal belongs to the interface, so logs go to the log file or nowhere
	sess, err := newSession(io.Discard)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.gateway.ValidateCredentials(); err != nil {
		return fmt.Errorf("failed to validate AWS credentials: %w", err)
	}

	c := controller.New(sess.gateway, sess.cfg.AWS.Region, storage.NewActivityLog(), sess.logger)
	return tui.Run(c)
}
