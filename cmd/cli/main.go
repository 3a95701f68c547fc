package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	noAutoStart bool
	rootCmd     = &cobra.Command{
		Use:   "vidgrab",
		Short: "vidgrab CLI - fetch social-media video and audio",
		Long:  `A command-line client for the vidgrab acquisition server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(enginesCmd)
}

// ensureServer checks if server is running and starts it if needed
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Fetch metadata for a video URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		payload, _ := json.Marshal(map[string]string{"url": args[0]})
		resp, err := http.Post(serverURL+"/api/v1/info", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var info map[string]interface{}
		json.Unmarshal(body, &info)
		fmt.Printf("Title:    %v\n", info["title"])
		fmt.Printf("Duration: %v\n", info["duration"])
		if info["uploader"] != nil {
			fmt.Printf("Uploader: %v\n", info["uploader"])
		}
		fmt.Printf("Platform: %v\n", info["platform"])
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a video (or audio-only) to the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		format, _ := cmd.Flags().GetString("format")
		quality, _ := cmd.Flags().GetString("quality")
		title, _ := cmd.Flags().GetString("title")
		outDir, _ := cmd.Flags().GetString("output")

		payload, _ := json.Marshal(map[string]string{
			"url":     args[0],
			"format":  format,
			"quality": quality,
			"title":   title,
		})
		resp, err := http.Post(serverURL+"/api/v1/download", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
		if filename == "" {
			filename = "download.bin"
		}
		target := filepath.Join(outDir, filename)

		file, err := os.Create(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()

		written, err := io.Copy(file, resp.Body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: transfer interrupted: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Saved %s (%d bytes)\n", target, written)
	},
}

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Show extraction engine health",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		resp, err := http.Get(serverURL + "/api/v1/engines/health")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var pretty bytes.Buffer
		if json.Indent(&pretty, body, "", "  ") == nil {
			fmt.Println(pretty.String())
		} else {
			fmt.Println(string(body))
		}
	},
}

func init() {
	downloadCmd.Flags().StringP("format", "f", "mp4", "Output format (mp4, mp3)")
	downloadCmd.Flags().StringP("quality", "q", "highest", "Requested quality (highest, 1080p, 720p, ...)")
	downloadCmd.Flags().StringP("title", "t", "", "Display title used for the output filename")
	downloadCmd.Flags().StringP("output", "o", ".", "Directory to save into")
}

// filenameFromDisposition extracts the quoted filename from a
// Content-Disposition attachment header.
func filenameFromDisposition(header string) string {
	const marker = `filename="`
	start := bytes.Index([]byte(header), []byte(marker))
	if start < 0 {
		return ""
	}
	rest := header[start+len(marker):]
	end := bytes.IndexByte([]byte(rest), '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
