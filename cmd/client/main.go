package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	"github.com/SlavaShagalov/user-list/internal/userlist/client"
	"github.com/SlavaShagalov/user-list/internal/userlist/delivery"
)

func main() {
	var (
		configPath string
		role       string
		sortFields []string
		page       int
		asJSON     bool
	)
	pflag.StringVarP(&configPath, "config", "c", "configs/client.yaml", "Config file path")
	pflag.StringVarP(&role, "role", "r", "", "Role to filter by")
	pflag.StringSliceVarP(&sortFields, "sort", "s", nil, "Header clicks to apply, in order")
	pflag.IntVarP(&page, "page", "p", 0, "Page to open")
	pflag.BoolVar(&asJSON, "json", false, "Print the data instead of the rendered list")
	pflag.Parse()

	config, err := app.ReadLocalConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.Level(config.Logging.Level)}))

	base, err := url.Parse(config.Client.BaseURL)
	if err != nil {
		panic(err)
	}

	httpClient := &http.Client{Timeout: config.Client.Timeout}
	ctx := context.Background()

	boot, err := client.LoadPage(ctx, httpClient, base.JoinPath(delivery.PagePath).String())
	if err != nil {
		panic(err)
	}

	endpoint, err := base.Parse(boot.Endpoint)
	if err != nil {
		panic(err)
	}

	transport := client.NewHTTPTransport(endpoint.String(), httpClient, config.Client.MaxRequestFails, logger)
	controller, err := client.NewController(boot, transport, logger)
	if err != nil {
		panic(err)
	}

	if role != "" {
		if err = controller.ChangeRole(ctx, role); err != nil {
			panic(err)
		}
	}
	for _, field := range sortFields {
		if err = controller.ClickSort(ctx, field); err != nil {
			panic(err)
		}
	}
	if page > 0 {
		if err = controller.ClickPage(ctx, page); err != nil {
			panic(err)
		}
	}

	if asJSON {
		data := controller.Data()
		for _, user := range data.Users {
			b, err := user.MarshalJSON()
			if err != nil {
				panic(err)
			}
			fmt.Println(string(b))
		}
		fmt.Printf("total: %d\n", data.Total)
		return
	}

	fmt.Println(controller.HTML())
}
