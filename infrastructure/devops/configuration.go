package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Configuration is loaded once per process, from the SSM parameter
// named by MYBTP_CONFIG_PARAM, or from the yaml file named by
// MYBTP_CONFIG_FILE when running locally.
type Configuration struct {
	ListenAddr  string `yaml:"listen_addr"`
	DatabaseDSN string `yaml:"database_dsn"`
	JWTSecret   string `yaml:"jwt_secret"`

	DocumentsBucket string `yaml:"documents_bucket"`
	GeoBaseURL      string `yaml:"geo_base_url"`

	Slack struct {
		Token          string `yaml:"token"`
		InfoChannelID  string `yaml:"info_channel_id"`
		ErrorChannelID string `yaml:"error_channel_id"`
	} `yaml:"slack"`

	Notifications struct {
		From string   `yaml:"from"`
		To   []string `yaml:"to"`
	} `yaml:"notifications"`
}

var (
	once    sync.Once
	loaded  *Configuration
	loadErr error
)

func LoadConfiguration(ctx context.Context) (*Configuration, error) {
	once.Do(func() {
		var raw []byte

		if file := os.Getenv("MYBTP_CONFIG_FILE"); file != "" {
			raw, loadErr = os.ReadFile(file)
			if loadErr != nil {
				loadErr = fmt.Errorf("read config file: %w", loadErr)
				return
			}
		} else {
			raw, loadErr = readParameter(ctx, paramName())
			if loadErr != nil {
				return
			}
		}

		parsed := &Configuration{}
		if err := yaml.Unmarshal(raw, parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}
		if parsed.ListenAddr == "" {
			parsed.ListenAddr = ":8090"
		}

		loaded = parsed
	})

	return loaded, loadErr
}

func paramName() string {
	if name := os.Getenv("MYBTP_CONFIG_PARAM"); name != "" {
		return name
	}
	return "mybtp-config"
}

func readParameter(ctx context.Context, name string) ([]byte, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter: %w", err)
	}

	return []byte(*out.Parameter.Value), nil
}
