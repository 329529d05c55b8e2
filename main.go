package main

import (
	"flag"
	"log"
	"os"

	"github.com/golang/glog"

	"github.gatech.edu/ECEInnovation/x86-Translator/autograder"
	"github.gatech.edu/ECEInnovation/x86-Translator/config"
	"github.gatech.edu/ECEInnovation/x86-Translator/languageServer"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
	"github.gatech.edu/ECEInnovation/x86-Translator/util"
	"github.gatech.edu/ECEInnovation/x86-Translator/webview"
)

func main() {
	// glog registers its flags on the default set; everything after the first
	// non-flag argument is left for the commands below.
	flag.Parse()
	defer glog.Flush()

	conf, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalln("Could not load configuration:", err)
	}
	util.LogEndpoint = conf.LogEndpoint

	fileOptions, err := listing.ParseOptions(conf.ListingOptions)
	if err != nil {
		log.Fatalln("Invalid listing options in configuration:", err)
	}

	args := flag.Args()
	if autograder.GetConfig() != nil {
		agConf := autograder.GetConfig()
		if agConf.Mode != "asm" {
			log.Fatalln("Invalid autograding mode:", agConf.Mode)
		}
		gso, err := autograder.AutogradeAsmListings(agConf)
		if err != nil {
			log.Fatalln("Autograding failed:", err)
		}
		if err := gso.Save(); err != nil {
			log.Fatalln("Could not save results:", err)
		}
	} else if len(args) >= 1 && args[0] == "languageServer" {
		if len(args) >= 2 && args[1] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()
	} else if len(args) >= 3 && len(args) <= 4 && args[0] == "assemble" {
		opts := fileOptions
		if len(args) == 4 {
			cmdOptions, err := listing.ParseOptions(args[3])
			if err != nil {
				printUsage()
				log.Fatalln("Invalid options:", err)
			}
			opts = opts.Merge(cmdOptions)
		}
		if err := runAssemble(os.Stdout, conf, args[1], args[2], opts); err != nil {
			log.Fatalln(err)
		}
	} else if len(args) == 2 && args[0] == "web" {
		if err := webview.RunStandaloneWebserver(withDefaultExtension(args[1], ".asm"), conf.WebAddress, fileOptions); err != nil {
			log.Fatalln(err)
		}
	} else if len(args) == 0 {
		// run as language server but in tcp mode so it can be remotely debugged
		languageServer.ListenAndServeTCP(conf.LanguageServerAddress)
	} else {
		printUsage()
		log.Fatalln("Invalid arguments:", os.Args)
	}
}
