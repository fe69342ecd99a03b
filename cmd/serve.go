package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/app/echoServer"
	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/database"

	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()

		if migrateOnStart {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
		}

		// repos
		ur := userrepo.New(db)
		ir := itemrepo.New(db)
		br := bookingrepo.New(db)
		rr := requestrepo.New(db)
		cr := commentrepo.New(db)

		// services
		us := usersvc.New(ur)
		is := itemsvc.New(ir, itemsvc.Deps{Users: ur, Requests: rr, Bookings: br, Comments: cr})
		bs := bookingsvc.New(br, ir, ur, log, bookingsvc.WithOwnerEmptyIsError(cfg.BookingOwnerEmptyIsError))
		rs := requestsvc.New(rr, ur, ir, log)

		e := echoServer.New(log, echoServer.C{
			User:    &userctrl.Controller{Svc: us, Log: log},
			Item:    &itemctrl.Controller{Svc: is, Log: log},
			Booking: &bookingctrl.Controller{Svc: bs, Log: log},
			Request: &requestctrl.Controller{Svc: rs, Log: log},
		})

		port := os.Getenv("PORT")
		if port == "" {
			port = cfg.Port
		}
		log.Info("starting server", "port", port)

		errCh := make(chan error, 1)
		go func() { errCh <- e.Start(":" + port) }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(sctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
	rootCmd.AddCommand(serveCmd)
}
