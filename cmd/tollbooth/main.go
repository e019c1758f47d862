package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/tollctl/internal/booth"
	"github.com/danmuck/tollctl/internal/config"
	"github.com/danmuck/tollctl/internal/toll"
)

func main() {
	configPath := flag.String("config", "", "path to booth TOML config with default host/port")
	flag.Parse()

	host := "127.0.0.1"
	port := 12345
	timeout := 5 * time.Second
	if *configPath != "" {
		cfg, err := config.LoadBoothConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tollbooth: %v\n", err)
			os.Exit(1)
		}
		host, port, timeout = cfg.Host, cfg.Port, cfg.Timeout()
	}

	tx, err := collectTransaction(flag.Args(), &host, &port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tollbooth: %v\n", err)
		os.Exit(1)
	}

	client := booth.NewClient(net.JoinHostPort(host, strconv.Itoa(port))).WithTimeout(timeout)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Send(ctx, tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error communicating with the server:", err)
		os.Exit(1)
	}
	fmt.Println("Server response:", resp)
}

// collectTransaction takes "host port type plate point" from argv, or prompts
// for each field when no args are given.
func collectTransaction(args []string, host *string, port *int) (toll.Transaction, error) {
	if len(args) == 5 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return toll.Transaction{}, fmt.Errorf("server port must be an integer: %q", args[1])
		}
		point, err := strconv.Atoi(args[4])
		if err != nil {
			return toll.Transaction{}, fmt.Errorf("toll point must be an integer: %q", args[4])
		}
		*host = args[0]
		*port = p
		return toll.Transaction{
			Kind:  toll.Kind(strings.ToUpper(args[2])),
			Plate: args[3],
			Point: point,
		}, nil
	}
	if len(args) != 0 {
		return toll.Transaction{}, fmt.Errorf("usage: tollbooth [flags] <host> <port> <ENTRY|EXIT> <plate> <point>")
	}

	fmt.Println("No arguments provided; entering interactive mode.")
	in := bufio.NewReader(os.Stdin)

	h, err := prompt(in, fmt.Sprintf("Enter server host [%s]: ", *host))
	if err != nil {
		return toll.Transaction{}, err
	}
	if h != "" {
		*host = h
	}

	p, err := prompt(in, fmt.Sprintf("Enter server port [%d]: ", *port))
	if err != nil {
		return toll.Transaction{}, err
	}
	if p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return toll.Transaction{}, fmt.Errorf("server port must be an integer: %q", p)
		}
		*port = parsed
	}

	kind, err := prompt(in, "Enter transaction type (ENTRY/EXIT): ")
	if err != nil {
		return toll.Transaction{}, err
	}
	plate, err := prompt(in, "Enter vehicle plate number: ")
	if err != nil {
		return toll.Transaction{}, err
	}
	rawPoint, err := prompt(in, "Enter toll point number: ")
	if err != nil {
		return toll.Transaction{}, err
	}
	point, err := strconv.Atoi(rawPoint)
	if err != nil {
		return toll.Transaction{}, fmt.Errorf("toll point must be an integer: %q", rawPoint)
	}

	return toll.Transaction{
		Kind:  toll.Kind(strings.ToUpper(kind)),
		Plate: plate,
		Point: point,
	}, nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
