package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Scaffold files: static or name-parameterized, independent of the design
// tree's content.

type packageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         packageScripts    `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type packageScripts struct {
	Dev   string `json:"dev"`
	Build string `json:"build"`
	Start string `json:"start"`
	Lint  string `json:"lint"`
}

func packageJSON(projectName string) string {
	manifest := packageManifest{
		Name:    strings.Join(strings.Fields(strings.ToLower(projectName)), "-"),
		Version: "1.0.0",
		Private: true,
		Scripts: packageScripts{
			Dev:   "next dev",
			Build: "next build",
			Start: "next start",
			Lint:  "next lint",
		},
		Dependencies: map[string]string{
			"next":      "^14.0.0",
			"react":     "^18.2.0",
			"react-dom": "^18.2.0",
		},
		DevDependencies: map[string]string{
			"@types/node":      "^20",
			"@types/react":     "^18",
			"@types/react-dom": "^18",
			"typescript":       "^5",
		},
	}

	data, _ := json.MarshalIndent(manifest, "", "  ")
	return string(data)
}

const nextConfig = `/** @type {import('next').NextConfig} */
const nextConfig = {
  reactStrictMode: true,
};

module.exports = nextConfig;
`

type tsConfigFile struct {
	CompilerOptions tsCompilerOptions `json:"compilerOptions"`
	Include         []string          `json:"include"`
	Exclude         []string          `json:"exclude"`
}

type tsCompilerOptions struct {
	Target           string              `json:"target"`
	Lib              []string            `json:"lib"`
	AllowJS          bool                `json:"allowJs"`
	SkipLibCheck     bool                `json:"skipLibCheck"`
	Strict           bool                `json:"strict"`
	NoEmit           bool                `json:"noEmit"`
	EsModuleInterop  bool                `json:"esModuleInterop"`
	Module           string              `json:"module"`
	ModuleResolution string              `json:"moduleResolution"`
	ResolveJSON      bool                `json:"resolveJsonModule"`
	IsolatedModules  bool                `json:"isolatedModules"`
	JSX              string              `json:"jsx"`
	Incremental      bool                `json:"incremental"`
	Plugins          []map[string]string `json:"plugins"`
	Paths            map[string][]string `json:"paths"`
}

func tsConfig() string {
	cfg := tsConfigFile{
		CompilerOptions: tsCompilerOptions{
			Target:           "es5",
			Lib:              []string{"dom", "dom.iterable", "esnext"},
			AllowJS:          true,
			SkipLibCheck:     true,
			Strict:           true,
			NoEmit:           true,
			EsModuleInterop:  true,
			Module:           "esnext",
			ModuleResolution: "bundler",
			ResolveJSON:      true,
			IsolatedModules:  true,
			JSX:              "preserve",
			Incremental:      true,
			Plugins:          []map[string]string{{"name": "next"}},
			Paths:            map[string][]string{"@/*": {"./src/*"}},
		},
		Include: []string{"next-env.d.ts", "**/*.ts", "**/*.tsx", ".next/types/**/*.ts"},
		Exclude: []string{"node_modules"},
	}

	data, _ := json.MarshalIndent(cfg, "", "  ")
	return string(data)
}

const globalStyles = `* {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
}

.section {
  position: relative;
  width: 100%;
}

.component {
  position: absolute;
}
`

func layout(projectName string) string {
	return fmt.Sprintf(`import type { Metadata } from 'next';
import '../styles/globals.css';

export const metadata: Metadata = {
  title: '%s',
  description: 'Generated by MultiWeb',
};

export default function RootLayout({
  children,
}: {
  children: React.ReactNode;
}) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  );
}
`, projectName)
}

// fence keeps the markdown code fences out of the raw template literal.
const fence = "```"

func readme(projectName string) string {
	tpl := `# {name}

This project was generated by **MultiWeb**.

## Getting Started

1. Install dependencies:
{fence}bash
npm install
{fence}

2. Run the development server:
{fence}bash
npm run dev
{fence}

3. Open [http://localhost:3000](http://localhost:3000) in your browser.

## Build for Production

{fence}bash
npm run build
npm start
{fence}

## Deploy

This project is ready to deploy on:
- **Vercel** (recommended)
- **Netlify**
- **Any Node.js hosting**

---

Generated with MultiWeb
`
	tpl = strings.ReplaceAll(tpl, "{fence}", fence)
	return strings.ReplaceAll(tpl, "{name}", projectName)
}
