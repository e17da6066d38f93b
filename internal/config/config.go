package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobsheet-engine/internal/domain"
)

type TabConfig struct {
	Name          string `yaml:"name"`
	TitleCol      int    `yaml:"title_col"`
	DecisionCol   int    `yaml:"decision_col"`
	DecisionAtCol int    `yaml:"decision_at_col"`
	FirstDataRow  int    `yaml:"first_data_row"`
}

func (t TabConfig) Spec() domain.TabSpec {
	return domain.TabSpec{
		Name:          t.Name,
		TitleCol:      t.TitleCol,
		DecisionCol:   t.DecisionCol,
		DecisionAtCol: t.DecisionAtCol,
		FirstDataRow:  t.FirstDataRow,
	}
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		Port    int    `yaml:"port"`
	} `yaml:"app"`

	Workbook struct {
		Path string `yaml:"path"`
	} `yaml:"workbook"`

	Tabs struct {
		Jobs  TabConfig `yaml:"jobs"`
		Today TabConfig `yaml:"today"`
	} `yaml:"tabs"`

	Purge struct {
		// DryRun is the safety switch. It ships on; apply mode has to be
		// asked for explicitly.
		DryRun       bool     `yaml:"dry_run"`
		PreviewLimit int      `yaml:"preview_limit"`
		TooSenior    []string `yaml:"too_senior"`
		Delete       []string `yaml:"delete"`
	} `yaml:"purge"`

	Serve struct {
		EditEventsPerSec float64 `yaml:"edit_events_per_sec"`
		EditBurst        int     `yaml:"edit_burst"`
		TransferEveryMin int     `yaml:"transfer_every_min"`
		SweepEveryMin    int     `yaml:"sweep_every_min"`
	} `yaml:"serve"`

	Logging struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the shipped configuration, curated pattern lists
// included. The lists are data, not code: config files can replace them
// wholesale (see OverlayPatterns).
func Default() Config {
	var cfg Config

	cfg.App.DataDir = "."
	cfg.App.Port = 38472

	cfg.Workbook.Path = "jobsheet.db"

	jobs := domain.JobsTab()
	cfg.Tabs.Jobs = TabConfig{
		Name:          jobs.Name,
		TitleCol:      jobs.TitleCol,
		DecisionCol:   jobs.DecisionCol,
		DecisionAtCol: jobs.DecisionAtCol,
		FirstDataRow:  jobs.FirstDataRow,
	}
	today := domain.TodayTab()
	cfg.Tabs.Today = TabConfig{
		Name:         today.Name,
		TitleCol:     today.TitleCol,
		DecisionCol:  today.DecisionCol,
		FirstDataRow: today.FirstDataRow,
	}

	cfg.Purge.DryRun = true
	cfg.Purge.PreviewLimit = 30
	cfg.Purge.TooSenior = []string{
		"senior",
		"sr.",
		"staff",
		"principal",
		"lead",
		"head of",
		"director",
		"vp",
		"vice president",
		"chief",
		"architect",
		"expert",
		"confirmé",
		"expérimenté",
	}
	cfg.Purge.Delete = []string{
		"sales development representative",
		"business development",
		"account executive",
		"account manager",
		"customer success",
		"commercial",
		"technico-commercial",
		"accountant",
		"accounting",
		"finance",
		"comptable",
		"comptabilité",
		"maintenance",
		"recruiter",
		"recruteur",
		"human resources",
		"ressources humaines",
		"call center",
		"téléconseiller",
	}

	cfg.Serve.EditEventsPerSec = 20
	cfg.Serve.EditBurst = 40
	// 0 = the periodic tasks stay off
	cfg.Serve.TransferEveryMin = 0
	cfg.Serve.SweepEveryMin = 0

	cfg.Logging.File = "jobsheet.log"
	cfg.Logging.Level = "info"

	return cfg
}

// Load reads a YAML config over the defaults, so partial files work.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
