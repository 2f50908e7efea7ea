package matcher

// DefaultExtensions lists file extensions, without the leading dot, of
// scripts that commonly start with an interpreter directive.
var DefaultExtensions = []string{
	// https://en.wikipedia.org/wiki/AWK
	"awk",
	// https://bats-core.readthedocs.io
	"bats",
	// https://en.wikipedia.org/wiki/Common_Gateway_Interface
	"cgi",
	// https://dlang.org/rdmd.html
	"d",
	// https://elixir-lang.org
	"exs",
	// https://openjdk.org/jeps/330#Shebang_files
	"java",
	// Node.js and Deno scripts
	"js", "ts",
	// Kotlin scripting
	"kts",
	// https://www.lua.org
	"lua",
	// https://en.wikipedia.org/wiki/Make_(software)
	"mk",
	// https://www.php.net/manual/en/features.commandline.usage.php
	"php", "php3", "php4", "php5",
	// https://perldoc.perl.org/perlrun#Location-of-Perl
	"pl", "t", "perl",
	// https://www.debian.org/doc/debian-policy/ch-maintainerscripts.html
	"postinst", "postrm", "preinst", "prerm",
	// PowerShell
	"ps1",
	// https://docs.python.org/3/using/unix.html#miscellaneous
	"py",
	// https://www.ruby-lang.org
	"rb",
	// https://www.gnu.org/software/sed
	"sed",
	// https://en.wikipedia.org/wiki/Shell_script
	"sh", "bash", "csh", "fish", "ksh", "tcsh", "zsh",
	// https://www.slackwiki.com/Writing_A_SlackBuild_Script
	"SlackBuild",
	// SystemTap
	"stp",
}

// DefaultFileNames lists exact file names routed to the normalizer.
var DefaultFileNames = []string{
	// https://en.wikipedia.org/wiki/Make_(software)
	"Makefile", "GNUmakefile",
}
