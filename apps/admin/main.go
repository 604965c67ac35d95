package main

import (
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	logsvc "github.com/trezcool/shule/services/logger"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("ADMIN : ", conf), conf)
	logger.Enable(!conf.Debug)

	// the CLI always works on the mock dataset
	db, err := inmemdb.Open(school.InitialData(nowFunc()))
	if err != nil {
		logger.Fatal("opening store", err)
	}

	// start CLI
	cli := commandLine{
		conf:   conf,
		logger: logger,
		svc:    school.NewService(inmemdb.NewSchoolRepository(db), nil /* no emails */, logger, conf),
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	logger.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("command failed: "+err.Error(), err)
		}
		os.Exit(1)
	}
}
