// objinfo is a CLI utility for inspecting WaveFront OBJ meshes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/breakout/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "check":
		err = cmdCheck(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objinfo - WaveFront OBJ mesh utility

Usage:
  objinfo <command> [options]

Commands:
  info [-v] <file.obj>           Show mesh statistics (-v lists vertices)
  check [-j N] <path>...         Parse every .obj file under the given paths

Examples:
  objinfo info assets/pad.obj
  objinfo check -j 4 assets`)
}

func cmdInfo(w io.Writer, args []string) error {
	fset := flag.NewFlagSet("info", flag.ContinueOnError)
	verbose := fset.Bool("v", false, "List emitted vertices and triangles")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 1 {
		return errors.New("usage: objinfo info [-v] <file.obj>")
	}

	path := fset.Arg(0)
	mesh, err := formats.ParseOBJFile(path)
	if err != nil {
		return err
	}

	min, max := mesh.Bounds()
	fmt.Fprintf(w, "File:      %s\n", path)
	fmt.Fprintf(w, "Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(w, "Indices:   %d\n", len(mesh.Indices))
	fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "Width:     %g\n", mesh.Width)
	fmt.Fprintf(w, "Height:    %g\n", mesh.Height)
	fmt.Fprintf(w, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
	if len(mesh.Ignored) > 0 {
		keys := make([]string, 0, len(mesh.Ignored))
		for k := range mesh.Ignored {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%d", k, mesh.Ignored[k])
		}
		fmt.Fprintf(w, "Skipped:   %s\n", strings.Join(parts, " "))
	}

	if !*verbose {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Vertices:")
	for i, v := range mesh.Vertices {
		fmt.Fprintf(w, "  %4d  p(%g %g %g) t(%g %g) n(%g %g %g)\n", i,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.TexCoord.X(), v.TexCoord.Y(),
			v.Normal.X(), v.Normal.Y(), v.Normal.Z())
	}
	fmt.Fprintln(w, "Triangles:")
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		fmt.Fprintf(w, "  %4d  %d %d %d\n", i/3, mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2])
	}
	return nil
}

// checkResult is the outcome of parsing one file.
type checkResult struct {
	path string
	mesh *formats.OBJMesh
	err  error
}

func cmdCheck(w io.Writer, args []string) error {
	fset := flag.NewFlagSet("check", flag.ContinueOnError)
	jobs := fset.Int("j", 8, "Number of files parsed concurrently")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() < 1 {
		return errors.New("usage: objinfo check [-j N] <path>...")
	}

	paths, err := collectOBJFiles(fset.Args())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no .obj files found")
	}

	results := checkFiles(context.Background(), paths, *jobs)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(w, "ok    %s (%d vertices, %d triangles, %gx%g)\n",
			r.path, len(r.mesh.Vertices), r.mesh.TriangleCount(), r.mesh.Width, r.mesh.Height)
	}

	fmt.Fprintf(w, "\n%d files, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// checkFiles parses paths with at most jobs loads in flight. Every file is
// reported; a failure does not stop the others.
func checkFiles(ctx context.Context, paths []string, jobs int) []checkResult {
	results := make([]checkResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i].path = path
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].mesh, results[i].err = formats.ParseOBJFile(path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// collectOBJFiles expands directories into the .obj files they contain.
// Files named explicitly are kept whatever their extension.
func collectOBJFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}
