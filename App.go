package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ExitCodeMainError = 1

const DefaultListenAddr = ":8080"

func RunApp(databasePath string, listenAddr string) error {
	gin.SetMode(gin.ReleaseMode)

	serviceContainer, err := BuildServiceContainer(databasePath)

	if err == nil {
		serviceContainer.WebhookDispatcher.Start()
		defer serviceContainer.WebhookDispatcher.Close()
		defer serviceContainer.Database.Close()

		err = http.ListenAndServe(listenAddr, serviceContainer.Router)
	}

	return err
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
	}

	if err != nil {
		return ExitCodeMainError
	}

	return 0
}
