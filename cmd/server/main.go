/*
 * Copyright (c) 2025, OpenCaseWork (https://opencasework.org).
 *
 * OpenCaseWork licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/opencasework/case-management-service/internal/system/config"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/document"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
	"github.com/opencasework/case-management-service/internal/system/log"
	"github.com/opencasework/case-management-service/internal/system/managers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	cmsHome := getCMSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	cmsConfig, err := config.LoadConfig(cmsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitializeCMSRuntime(cmsHome, cmsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}
	if err := log.Init(cmsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	if _, err := crypto.GetService(); err != nil {
		logger.Error("Invalid privacy key material", log.Error(err))
		os.Exit(1)
	}
	if _, err := dbprovider.NewDBProvider().GetDBClient(); err != nil {
		logger.Error("Failed to connect to database", log.Error(err))
		os.Exit(1)
	}
	if cmsConfig.DocumentStore.URI != "" {
		if _, err := document.Connect(cmsConfig.DocumentStore); err != nil {
			// Archiving is best-effort, the service still starts.
			logger.Warn("Document store unavailable, submission archiving disabled", log.Error(err))
		}
	}

	serverAddr := fmt.Sprintf("%s:%d", cmsConfig.Addr.Host, cmsConfig.Addr.Port)
	mux := initMultiplexer()
	handler := enableCORS(mux, cmsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Error("Failed to start listener", log.Error(err))
		os.Exit(1)
	}
	logger.Info("Case management service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register services", log.Error(err))
	}
	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	origins := map[string]bool{}
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origins[origin] || origins["*"] {
			if origins["*"] {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getCMSHome() string {

	projectHome := ""
	projectHomeFlag := flag.String("cmsHome", "", "Path to the case management service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}
	return projectHome
}
