package probe

import (
	"context"

	"github.com/rs/zerolog"
)

// foregroundScript resolves the foreground window handle via user32, reads
// its title, and maps it back to the owning process name.
const foregroundScript = `
Add-Type @"
using System;
using System.Runtime.InteropServices;
using System.Text;
public class Foreground {
	[DllImport("user32.dll")] public static extern IntPtr GetForegroundWindow();
	[DllImport("user32.dll")] public static extern int GetWindowText(IntPtr hWnd, StringBuilder text, int count);
	[DllImport("user32.dll")] public static extern uint GetWindowThreadProcessId(IntPtr hWnd, out uint pid);
}
"@
$handle = [Foreground]::GetForegroundWindow()
$builder = New-Object System.Text.StringBuilder 512
[void][Foreground]::GetWindowText($handle, $builder, 512)
$procId = 0
[void][Foreground]::GetWindowThreadProcessId($handle, [ref]$procId)
$proc = Get-Process -Id $procId -ErrorAction SilentlyContinue
"$($proc.ProcessName)` + "`" + `t$($builder.ToString())"
`

// powerShellProber queries the foreground window through a PowerShell
// one-shot. Slower than a native call but dependency-free and bounded by
// the probe timeout.
type powerShellProber struct {
	log zerolog.Logger
}

func (p *powerShellProber) Probe(ctx context.Context) (Window, bool) {
	out, err := runCommand(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", foregroundScript)
	if err != nil {
		p.log.Debug().Err(err).Msg("powershell query failed")
		return Window{}, false
	}
	return parseTabSeparated(out)
}
