package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.alis.build/alog"
)

const ExitCodeMainError = 1

func RunApp(config Config) error {
	gin.SetMode(gin.ReleaseMode)

	if err := config.ApplyLogLevel(); err != nil {
		return err
	}

	serviceContainer, err := BuildServiceContainer(config)

	if err == nil {
		serviceContainer.WebhookDispatcher.Start()
		defer serviceContainer.WebhookDispatcher.Close()
		defer serviceContainer.Database.Close()

		alog.Infof(context.Background(), "listening on %s, database %s", config.ListenAddr, config.DatabaseFilepath)
		err = http.ListenAndServe(config.ListenAddr, serviceContainer.Router)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
