package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/s3uri/internal/config"
	"github.com/3leaps/s3uri/internal/observability"
	"github.com/3leaps/s3uri/pkg/preflight"
	"github.com/3leaps/s3uri/pkg/provider/s3"
)

var doctorProbe bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks on the environment and suggest fixes for common issues.

Examples:
  s3uri doctor                        # Environment, region and credential checks
  s3uri doctor --probe                # Also probe bucket enumeration
  s3uri doctor --probe --bucket logs  # And listing inside one bucket`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorProbe, "probe", false, "Probe read access with the resolved credentials")
	doctorCmd.Flags().String("bucket", "", "Bucket to probe listing in (with --probe)")
}

// errChecksFailed is returned when at least one diagnostic check fails.
var errChecksFailed = errors.New("one or more checks failed")

func runDoctor(cmd *cobra.Command, args []string) error {
	log := observability.CLILogger
	cfg := config.GetConfig()
	if cfg == nil {
		return exitError(foundry.ExitInvalidArgument, "Configuration not loaded", errors.New("config is nil"))
	}

	log.Info("=== s3uri doctor ===")
	log.Info("")

	ok := true
	checkNum := 1
	totalChecks := 5
	if doctorProbe {
		totalChecks++
	}

	goVersion := runtime.Version()
	log.Info(fmt.Sprintf("[%d/%d] Checking Go runtime... ✅ %s %s/%s", checkNum, totalChecks, goVersion, runtime.GOOS, runtime.GOARCH),
		zap.String("go_version", goVersion))
	checkNum++

	version := crucible.GetVersion()
	if version.Gofulmen != "" {
		log.Info(fmt.Sprintf("[%d/%d] Checking Gofulmen... ✅ v%s", checkNum, totalChecks, version.Gofulmen),
			zap.String("gofulmen_version", version.Gofulmen),
			zap.String("crucible_version", version.Crucible))
	} else {
		log.Warn(fmt.Sprintf("[%d/%d] Checking Gofulmen... ⚠️  version unavailable", checkNum, totalChecks))
	}
	checkNum++

	if file := config.ConfigFileUsed(); file != "" {
		log.Info(fmt.Sprintf("[%d/%d] Checking config file... ✅ %s", checkNum, totalChecks, file),
			zap.String("config_file", file))
	} else {
		log.Info(fmt.Sprintf("[%d/%d] Checking config file... ✅ none (searched %s)", checkNum, totalChecks, config.DefaultConfigDir()))
	}
	checkNum++

	awsCfg, err := doctorAWSConfig(cmd.Context(), cfg)
	if err != nil {
		log.Error(fmt.Sprintf("[%d/%d] Checking AWS config... ❌ Cannot load AWS config", checkNum, totalChecks),
			zap.Error(err))
		printAWSCredentialsHelp()
		return exitError(foundry.ExitExternalServiceUnavailable, "Doctor checks failed", err)
	}

	if awsCfg.Region != "" {
		log.Info(fmt.Sprintf("[%d/%d] Checking region... ✅ %s", checkNum, totalChecks, awsCfg.Region),
			zap.String("region", awsCfg.Region))
	} else {
		log.Error(fmt.Sprintf("[%d/%d] Checking region... ❌ No region resolved", checkNum, totalChecks))
		log.Info("  Set --region, S3URI_REGION, AWS_REGION, or a region in your AWS profile.")
		if !cfg.IMDSRegion {
			log.Info("  On EC2, --imds-region reads the region from instance metadata.")
		}
		ok = false
	}
	checkNum++

	creds, err := awsCfg.Credentials.Retrieve(cmd.Context())
	if err != nil {
		log.Error(fmt.Sprintf("[%d/%d] Checking AWS credentials... ❌ Cannot retrieve credentials", checkNum, totalChecks),
			zap.Error(err))
		printAWSCredentialsHelp()
		return exitError(foundry.ExitExternalServiceUnavailable, "Doctor checks failed", err)
	}
	source := creds.Source
	if source == "" {
		source = "unknown"
	}
	log.Info(fmt.Sprintf("[%d/%d] Checking AWS credentials... ✅ Found credentials", checkNum, totalChecks),
		zap.String("access_key", maskAccessKey(creds.AccessKeyID)),
		zap.String("credential_source", source))
	checkNum++

	if doctorProbe {
		if !checkAccess(cmd.Context(), cfg, checkNum, totalChecks) {
			ok = false
		}
	}

	log.Info("")
	if !ok {
		log.Warn("⚠️  Some checks failed. Review the output above for details.")
		return exitError(foundry.ExitExternalServiceUnavailable, "Doctor checks failed", errChecksFailed)
	}
	log.Info("✅ All checks passed!")
	log.Info("")
	log.Info("=== End Diagnostics ===")
	return nil
}

// doctorAWSConfig resolves AWS configuration the same way the browse flow
// does, honouring profile, region and static credentials from config.
func doctorAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func checkAccess(ctx context.Context, cfg *config.Config, checkNum, totalChecks int) bool {
	log := observability.CLILogger

	p, err := s3.New(ctx, cfg.S3Config())
	if err != nil {
		log.Error(fmt.Sprintf("[%d/%d] Probing access... ❌ Cannot create S3 client", checkNum, totalChecks),
			zap.Error(err))
		return false
	}
	defer func() { _ = p.Close() }()

	rep := preflight.Run(ctx, p, cfg.Bucket, cfg.Prefix, cfg.Delimiter)
	for _, res := range rep.Results {
		if res.Allowed {
			log.Info(fmt.Sprintf("[%d/%d] Probing %s... ✅ allowed", checkNum, totalChecks, res.Capability),
				zap.String("method", res.Method))
			continue
		}
		log.Error(fmt.Sprintf("[%d/%d] Probing %s... ❌ %s", checkNum, totalChecks, res.Capability, res.Reason),
			zap.String("method", res.Method),
			zap.String("detail", res.Detail))
		if res.Capability == preflight.CapBucketList && res.Reason == "access-denied" {
			log.Info("  The credentials need s3:ListAllMyBuckets, or pass --bucket to skip bucket selection.")
		}
	}
	return rep.OK()
}

// maskAccessKey masks all but the last 4 characters of an access key.
func maskAccessKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// printAWSCredentialsHelp prints help for configuring AWS credentials.
func printAWSCredentialsHelp() {
	log := observability.CLILogger
	log.Info("")
	log.Info("To configure AWS credentials:")
	log.Info("  1. Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables, or")
	log.Info("  2. Run 'aws configure' to set up a profile and pass --profile, or")
	log.Info("  3. Use an IAM role when running on AWS infrastructure")
	log.Info("")
	log.Info("For S3-compatible storage (MinIO, Wasabi, etc.), also set:")
	log.Info("  - AWS_ENDPOINT_URL or use --endpoint flag, usually with --force-path-style")
	log.Info("")
}
